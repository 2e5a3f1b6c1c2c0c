package editor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 800
	WindowTitle  = "NWN Emitter Editor"
)

// Camera.
const (
	CameraFov         = 45.0
	CameraNear        = 0.1
	CameraFar         = 100.0
	CameraDistance    = 5.0
	CameraMinDistance = 0.1
	CameraMaxDistance = 50.0
	CameraYaw         = 180.0
	CameraPitchLimit  = 89.0
	OrbitSensitivity  = 0.5
	PanSensitivity    = 0.01
	DollyFactor       = 0.1
)

// Particles.
const (
	MaxParticles = 500000
	MaxFrameDt   = 0.1
)

// Transform gizmos.
const (
	GizmoSensitivity = 0.01
	ScaleMin         = 0.0
	ScaleMax         = 500.0
)

// Picking.
const (
	PickMinRadius   = 0.5
	PickMargin      = 0.2
	PickConeSamples = 5
)

// Scene drawing.
const (
	GridExtent     = 10.0
	GridLines      = 21
	DummyCrossSize = 0.5
	PointCrossSize = 0.3
	ArrowLength    = 1.0
	AxisGizmoInset = 60.0
	AxisGizmoSize  = 40.0
)

// Settings are optional overrides loaded from editor.yaml. Zero values fall
// back to the constants above.
type Settings struct {
	WindowWidth      int     `yaml:"window_width"`
	WindowHeight     int     `yaml:"window_height"`
	MaxParticles     int     `yaml:"max_particles"`
	GizmoSensitivity float32 `yaml:"gizmo_sensitivity"`
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"`
	TextureDir       string  `yaml:"texture_dir"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		WindowWidth:      WindowWidth,
		WindowHeight:     WindowHeight,
		MaxParticles:     MaxParticles,
		GizmoSensitivity: GizmoSensitivity,
		OrbitSensitivity: OrbitSensitivity,
	}
}

// LoadSettings reads path and overlays it on the defaults. A missing file is
// not an error; a malformed one is.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("settings: %w", err)
	}
	var over Settings
	if err := yaml.Unmarshal(data, &over); err != nil {
		return s, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if over.WindowWidth > 0 {
		s.WindowWidth = over.WindowWidth
	}
	if over.WindowHeight > 0 {
		s.WindowHeight = over.WindowHeight
	}
	if over.MaxParticles > 0 {
		s.MaxParticles = over.MaxParticles
	}
	if over.GizmoSensitivity > 0 {
		s.GizmoSensitivity = over.GizmoSensitivity
	}
	if over.OrbitSensitivity > 0 {
		s.OrbitSensitivity = over.OrbitSensitivity
	}
	if over.TextureDir != "" {
		s.TextureDir = over.TextureDir
	}
	return s, nil
}
