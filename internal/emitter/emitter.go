// Package emitter holds the static per-emitter configuration of an MDL
// effect model: spawn shape, motion parameters, color/size endpoints,
// render/blend modes and optional keyframe animation tracks. It carries no
// runtime particle state; that lives in internal/editor.
package emitter

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// UpdateType selects the spawn/update behavior of an emitter.
type UpdateType int

const (
	UpdateFountain UpdateType = iota
	UpdateSingle
	UpdateExplosion
	UpdateLightning
)

var updateNames = [...]string{"Fountain", "Single", "Explosion", "Lightning"}

func (t UpdateType) String() string {
	if t < 0 || int(t) >= len(updateNames) {
		return updateNames[0]
	}
	return updateNames[t]
}

// ParseUpdateType maps an MDL token to an UpdateType.
func ParseUpdateType(s string) (UpdateType, bool) {
	for i, n := range updateNames {
		if s == n {
			return UpdateType(i), true
		}
	}
	return UpdateFountain, false
}

// RenderType selects the billboard/orientation strategy for particles.
type RenderType int

const (
	RenderNormal RenderType = iota
	RenderLinked
	RenderBillboardLocalZ
	RenderBillboardWorldZ
	RenderAlignedWorldZ
	RenderAlignedParticleDir
	RenderMotionBlur
)

var renderNames = [...]string{
	"Normal",
	"Linked",
	"Billboard_to_Local_Z",
	"Billboard_to_World_Z",
	"Aligned_to_World_Z",
	"Aligned_to_Particle_Direction",
	"Motion_Blur",
}

func (t RenderType) String() string {
	if t < 0 || int(t) >= len(renderNames) {
		return renderNames[0]
	}
	return renderNames[t]
}

// ParseRenderType maps an MDL token to a RenderType.
func ParseRenderType(s string) (RenderType, bool) {
	for i, n := range renderNames {
		if s == n {
			return RenderType(i), true
		}
	}
	return RenderNormal, false
}

// BlendType selects the particle blend function.
type BlendType int

const (
	BlendNormal BlendType = iota
	BlendPunchThrough
	BlendLighten
)

// The on-disk token for punch-through is hyphenated, unlike the other enums
// which use underscores. Preserved for format compatibility.
var blendNames = [...]string{"Normal", "Punch-Through", "Lighten"}

func (t BlendType) String() string {
	if t < 0 || int(t) >= len(blendNames) {
		return blendNames[0]
	}
	return blendNames[t]
}

// ParseBlendType maps an MDL token to a BlendType.
func ParseBlendType(s string) (BlendType, bool) {
	for i, n := range blendNames {
		if s == n {
			return BlendType(i), true
		}
	}
	return BlendNormal, false
}

// SpawnType is stored as a bare integer in the MDL format.
type SpawnType int

const (
	SpawnNormal SpawnType = 0
	SpawnTrail  SpawnType = 1
)

// Node is one emitter's authored configuration. Field set and defaults
// mirror the MDL emitter node directives; every field round-trips through
// the text format even when it does not affect simulation.
type Node struct {
	Name   string
	Parent string

	// Behavior flags.
	P2P            bool
	P2PSel         int
	AffectedByWind bool
	Tinted         bool
	Bounce         bool
	Random         bool
	Inherit        bool
	InheritVel     bool
	InheritLocal   bool
	Splat          bool
	InheritPart    bool
	RenderOrder    int
	SpawnKind      SpawnType

	Update UpdateType
	Render RenderType
	Blend  BlendType

	// Texture: logical name as written in the file, plus a resolved path
	// when the editor has located the actual image on disk.
	Texture     string
	TexturePath string
	XGrid       int
	YGrid       int
	Loop        bool
	DeadSpace   float32
	TwoSidedTex bool

	BlastRadius float32
	BlastLength float32

	// Transform in editor space (Z-up). Rotation is degrees about X, Y, Z.
	Position mgl32.Vec3
	Rotation mgl32.Vec3

	// Spawn footprint.
	XSize float32
	YSize float32

	// Particle behavior.
	BirthRate   float32
	LifeExp     float32
	Velocity    float32
	Spread      float32
	Mass        float32
	ParticleRot float32

	// Visual interpolation endpoints.
	ColorStart mgl32.Vec3
	ColorEnd   mgl32.Vec3
	AlphaStart float32
	AlphaEnd   float32
	SizeStart  float32
	SizeEnd    float32
	SizeStartY float32
	SizeEndY   float32

	// Sparse numeric fields (written only when nonzero).
	Grav       float32
	Drag       float32
	Threshold  float32
	FPS        float32
	FrameStart float32
	FrameEnd   float32
	BounceCo   float32
	CombineTime float32
	BlurLength  float32

	LightningDelay  float32
	LightningRadius float32
	LightningScale  float32
	LightningSubDiv float32
	LightningZigZag float32

	PositionKeys    Track
	OrientationKeys Track
}

// Default returns the "basic fire" preset used for new emitters.
func Default() Node {
	return Node{
		Name:       "emitter",
		Parent:     "NULL",
		P2PSel:     1,
		Inherit:    true,
		Update:     UpdateFountain,
		Render:     RenderNormal,
		Blend:      BlendLighten,
		XGrid:      1,
		YGrid:      1,
		BirthRate:  2.0,
		LifeExp:    1.5,
		Velocity:   1.0,
		Spread:     45.0,
		Mass:       1.0,
		ColorStart: mgl32.Vec3{0.929, 0.592, 0.231},
		ColorEnd:   mgl32.Vec3{0.910, 0.471, 0.0},
		AlphaStart: 1.0,
		AlphaEnd:   1.0,
		SizeStart:  0.5,
		SizeEnd:    0.0,
		XSize:      0.1,
		YSize:      0.1,
	}
}

// Orientation converts the stored axis angles to a quaternion.
func (n *Node) Orientation() mgl32.Quat {
	return QuatFromAngles(n.Rotation)
}

// AnimatedPosition evaluates the position track at t, falling back to the
// static position when the track is empty.
func (n *Node) AnimatedPosition(t float32) mgl32.Vec3 {
	if len(n.PositionKeys.Keys) == 0 {
		return n.Position
	}
	return n.PositionKeys.ValueAt(t)
}

// AnimatedOrientation evaluates the orientation track (angles in degrees)
// at t. An empty track yields the zero rotation.
func (n *Node) AnimatedOrientation(t float32) mgl32.Vec3 {
	if len(n.OrientationKeys.Keys) == 0 {
		return mgl32.Vec3{}
	}
	return n.OrientationKeys.ValueAt(t)
}

// UniqueName derives a duplicate name for base that does not collide with
// any name in taken, using the original editor's `_N` suffix scheme: an
// existing numeric suffix continues counting from its value.
func UniqueName(base string, taken []string) string {
	start := 2
	if i := strings.LastIndexByte(base, '_'); i >= 0 && i < len(base)-1 {
		if v, err := strconv.Atoi(base[i+1:]); err == nil {
			base = base[:i]
			start = v + 1
		}
	}
	exists := func(name string) bool {
		for _, t := range taken {
			if t == name {
				return true
			}
		}
		return false
	}
	name := base
	for suffix := start; suffix < 1000; suffix++ {
		name = base + "_" + strconv.Itoa(suffix)
		if !exists(name) {
			break
		}
	}
	return name
}
