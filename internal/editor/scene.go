package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
	"github.com/varenx/nwn-emitter-editor/internal/mdl"
)

// Scene is the editable document: the model's emitter list plus the
// per-emitter runtime states and the current selection. States and emitters
// are index-aligned; Sync restores that invariant after list mutations.
type Scene struct {
	ModelName string
	Emitters  []emitter.Node
	States    []*EmitterState
	Selected  int

	MaxParticles int
	Seed         uint64
}

func NewScene(maxParticles int, seed uint64) *Scene {
	return &Scene{
		ModelName:    "untitled",
		Selected:     -1,
		MaxParticles: maxParticles,
		Seed:         seed,
	}
}

// Sync re-aligns the runtime state list with the emitter list.
func (sc *Scene) Sync() {
	sc.States = SyncStates(sc.States, len(sc.Emitters), sc.MaxParticles, sc.Seed)
	if sc.Selected >= len(sc.Emitters) {
		sc.Selected = len(sc.Emitters) - 1
	}
}

// AddEmitter appends a new emitter with the default preset and a unique
// name, selecting it.
func (sc *Scene) AddEmitter() {
	e := emitter.Default()
	e.Name = uniqueOrSelf("emitter", sc.names())
	e.Parent = sc.ModelName
	sc.Emitters = append(sc.Emitters, e)
	sc.Selected = len(sc.Emitters) - 1
	sc.Sync()
}

// RemoveEmitter deletes by index; out-of-range indices are a no-op.
func (sc *Scene) RemoveEmitter(i int) {
	if i < 0 || i >= len(sc.Emitters) {
		return
	}
	sc.Emitters = append(sc.Emitters[:i], sc.Emitters[i+1:]...)
	if sc.Selected == i {
		sc.Selected = -1
	} else if sc.Selected > i {
		sc.Selected--
	}
	sc.Sync()
}

// DuplicateEmitter copies an emitter under a derived unique name and
// selects the copy. Out-of-range indices are a no-op.
func (sc *Scene) DuplicateEmitter(i int) {
	if i < 0 || i >= len(sc.Emitters) {
		return
	}
	dup := sc.Emitters[i]
	dup.Name = emitter.UniqueName(dup.Name, sc.names())
	sc.Emitters = append(sc.Emitters, dup)
	sc.Selected = len(sc.Emitters) - 1
	sc.Sync()
}

// ResetModel discards all emitters and starts a fresh untitled model.
func (sc *Scene) ResetModel() {
	sc.ModelName = "untitled"
	sc.Emitters = nil
	sc.Selected = -1
	sc.Sync()
}

func (sc *Scene) names() []string {
	names := make([]string, len(sc.Emitters))
	for i := range sc.Emitters {
		names[i] = sc.Emitters[i].Name
	}
	return names
}

func uniqueOrSelf(base string, taken []string) string {
	for _, t := range taken {
		if t == base {
			return emitter.UniqueName(base, taken)
		}
	}
	return base
}

// Load replaces the scene with the model at path. On failure the current
// scene is left untouched.
func (sc *Scene) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	defer f.Close()

	m, err := mdl.Parse(f)
	if err != nil {
		return fmt.Errorf("load model %s: %w", path, err)
	}

	sc.ModelName = m.Name
	sc.Emitters = m.Emitters
	sc.States = nil
	sc.Selected = -1
	if len(sc.Emitters) > 0 {
		sc.Selected = 0
	}
	sc.Sync()
	return nil
}

// Save writes the scene as MDL text, deriving the model name from the file
// name when the scene is still untitled.
func (sc *Scene) Save(path string) error {
	name := sc.ModelName
	if name == "" || name == "untitled" {
		base := filepath.Base(path)
		name = base[:len(base)-len(filepath.Ext(base))]
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	defer f.Close()

	m := &mdl.Model{Name: name, Emitters: sc.Emitters}
	if err := mdl.Write(f, m); err != nil {
		return fmt.Errorf("save model %s: %w", path, err)
	}
	sc.ModelName = name
	return nil
}
