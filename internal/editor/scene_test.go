package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSceneAddRemoveDuplicate(t *testing.T) {
	sc := NewScene(100, 1)
	sc.AddEmitter()
	sc.AddEmitter()
	if len(sc.Emitters) != 2 || len(sc.States) != 2 {
		t.Fatalf("emitters/states = %d/%d", len(sc.Emitters), len(sc.States))
	}
	if sc.Emitters[0].Name == sc.Emitters[1].Name {
		t.Errorf("duplicate names: %q", sc.Emitters[0].Name)
	}
	if sc.Selected != 1 {
		t.Errorf("selected = %d, want 1", sc.Selected)
	}

	sc.DuplicateEmitter(0)
	if len(sc.Emitters) != 3 || sc.Selected != 2 {
		t.Fatalf("after duplicate: len %d selected %d", len(sc.Emitters), sc.Selected)
	}
	if sc.Emitters[2].Name == sc.Emitters[0].Name {
		t.Errorf("copy kept name %q", sc.Emitters[2].Name)
	}

	sc.RemoveEmitter(0)
	if len(sc.Emitters) != 2 || len(sc.States) != 2 {
		t.Fatalf("after remove: emitters/states = %d/%d", len(sc.Emitters), len(sc.States))
	}
	// Selection index shifts down with the removal.
	if sc.Selected != 1 {
		t.Errorf("selected = %d, want 1", sc.Selected)
	}

	// Out-of-range removals are no-ops.
	sc.RemoveEmitter(-1)
	sc.RemoveEmitter(99)
	if len(sc.Emitters) != 2 {
		t.Errorf("no-op removal changed the list")
	}

	sc.RemoveEmitter(sc.Selected)
	if sc.Selected != -1 {
		t.Errorf("removing the selected emitter left selection %d", sc.Selected)
	}
}

func TestSceneResetModel(t *testing.T) {
	sc := NewScene(100, 1)
	sc.AddEmitter()
	sc.ModelName = "fireball"
	sc.ResetModel()
	if sc.ModelName != "untitled" || len(sc.Emitters) != 0 || sc.Selected != -1 {
		t.Errorf("reset left %q %d %d", sc.ModelName, len(sc.Emitters), sc.Selected)
	}
}

func TestSceneSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burst.mdl")

	sc := NewScene(100, 1)
	sc.AddEmitter()
	sc.Emitters[0].Position = mgl32.Vec3{1, 2, 3}
	sc.Emitters[0].BirthRate = 7
	if err := sc.Save(path); err != nil {
		t.Fatal(err)
	}
	// Saving an untitled scene names the model after the file.
	if sc.ModelName != "burst" {
		t.Errorf("model name = %q, want burst", sc.ModelName)
	}

	loaded := NewScene(100, 1)
	if err := loaded.Load(path); err != nil {
		t.Fatal(err)
	}
	if loaded.ModelName != "burst" || len(loaded.Emitters) != 1 {
		t.Fatalf("loaded %q with %d emitters", loaded.ModelName, len(loaded.Emitters))
	}
	if loaded.Selected != 0 {
		t.Errorf("selected = %d, want 0", loaded.Selected)
	}
	e := loaded.Emitters[0]
	if e.Position != (mgl32.Vec3{1, 2, 3}) || e.BirthRate != 7 {
		t.Errorf("round trip lost fields: pos %v rate %v", e.Position, e.BirthRate)
	}
}

func TestSceneLoadFailureKeepsScene(t *testing.T) {
	sc := NewScene(100, 1)
	sc.AddEmitter()
	if err := sc.Load(filepath.Join(t.TempDir(), "missing.mdl")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(sc.Emitters) != 1 || sc.Selected != 0 {
		t.Errorf("failed load mutated the scene: %d emitters, selected %d", len(sc.Emitters), sc.Selected)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadSettings(filepath.Join(dir, "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("missing file gave %+v", s)
	}

	path := filepath.Join(dir, "editor.yaml")
	data := "window_width: 1920\ntexture_dir: /tmp/tex\norbit_sensitivity: 0.25\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.WindowWidth != 1920 || s.TextureDir != "/tmp/tex" || s.OrbitSensitivity != 0.25 {
		t.Errorf("overlay gave %+v", s)
	}
	// Unset fields keep their defaults.
	if s.WindowHeight != WindowHeight || s.MaxParticles != MaxParticles {
		t.Errorf("defaults lost: %+v", s)
	}

	if err := os.WriteFile(path, []byte("window_width: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("malformed yaml should error")
	}
}

func TestRandRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.RangeF(-2, 3)
		if v < -2 || v >= 3 {
			t.Fatalf("value %v outside [-2, 3)", v)
		}
	}

	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.NextU64() != b.NextU64() {
			t.Fatal("same seed diverged")
		}
	}
}
