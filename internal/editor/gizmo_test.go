package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Camera on the -Y axis looking at the origin with Z up: view-space right is
// world +X and view-space up is world +Z, which keeps the expected offsets
// easy to read.
func frontView() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, -5, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
}

func TestGrabAxisConstraint(t *testing.T) {
	e := emitter.Default()
	e.Position = mgl32.Vec3{1, 2, 3}
	g := NewGizmo()

	g.StartGrab(GrabX, 0, &e, 100, 100)
	g.UpdateGrab(&e, frontView(), 150, 130)

	if e.Position[0] == 1 {
		t.Error("X did not move")
	}
	if e.Position[1] != 2 || e.Position[2] != 3 {
		t.Errorf("constrained axes changed: %v", e.Position)
	}
}

func TestGrabCancelRestoresExactly(t *testing.T) {
	e := emitter.Default()
	e.Position = mgl32.Vec3{0.1, 0.2, 0.3}
	g := NewGizmo()

	g.StartGrab(GrabFree, 0, &e, 0, 0)
	g.UpdateGrab(&e, frontView(), 40, -25)
	g.UpdateGrab(&e, frontView(), 300, 120)
	g.CancelGrab(&e)

	if e.Position != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("cancel left position %v", e.Position)
	}
	if g.Active() {
		t.Error("gizmo still active after cancel")
	}
}

func TestGrabConstraintSwitchKeepsStart(t *testing.T) {
	e := emitter.Default()
	e.Position = mgl32.Vec3{5, 0, 0}
	g := NewGizmo()

	g.StartGrab(GrabFree, 0, &e, 0, 0)
	g.UpdateGrab(&e, frontView(), 200, 0)
	moved := e.Position

	// Switching constraints mid-drag stays relative to the original
	// position, not the displaced one.
	g.StartGrab(GrabZ, 0, &e, 0, 0)
	g.UpdateGrab(&e, frontView(), 200, 0)
	if e.Position[0] != 5 {
		t.Errorf("X = %v after Z constraint, want 5", e.Position[0])
	}
	if moved == e.Position {
		t.Error("constraint switch had no effect")
	}
	g.CancelGrab(&e)
	if e.Position != (mgl32.Vec3{5, 0, 0}) {
		t.Errorf("cancel after switch left %v", e.Position)
	}
}

func TestScaleClampAndCancel(t *testing.T) {
	e := emitter.Default()
	e.XSize, e.YSize = 2, 4
	g := NewGizmo()

	g.StartScale(0, &e, 0, 100)
	g.UpdateScale(&e, 0, 100000) // huge downward drag, factor well below zero
	if e.XSize != ScaleMin || e.YSize != ScaleMin {
		t.Errorf("negative factor not clamped: %v %v", e.XSize, e.YSize)
	}

	g.UpdateScale(&e, 0, -1e9)
	if e.XSize != ScaleMax || e.YSize != ScaleMax {
		t.Errorf("upper clamp failed: %v %v", e.XSize, e.YSize)
	}

	g.CancelScale(&e)
	if e.XSize != 2 || e.YSize != 4 {
		t.Errorf("cancel left footprint %v %v", e.XSize, e.YSize)
	}
}

func TestScaleUniformRatio(t *testing.T) {
	e := emitter.Default()
	e.XSize, e.YSize = 1, 3
	g := NewGizmo()

	g.StartScale(0, &e, 0, 0)
	g.UpdateScale(&e, 0, -50) // upward drag grows both axes
	if e.XSize <= 1 || e.YSize <= 3 {
		t.Errorf("expected growth, got %v %v", e.XSize, e.YSize)
	}
	ratio := e.YSize / e.XSize
	if ratio < 2.99 || ratio > 3.01 {
		t.Errorf("aspect ratio drifted: %v", ratio)
	}
	g.CommitScale()
	if g.Active() {
		t.Error("gizmo still active after commit")
	}
}

func TestRotateAxisIsolation(t *testing.T) {
	e := emitter.Default()
	e.Rotation = mgl32.Vec3{10, 20, 30}
	g := NewGizmo()

	g.StartRotate(RotateY, 0, &e, 0, 0)
	g.UpdateRotate(&e, 80, 40)
	if e.Rotation[0] != 10 || e.Rotation[2] != 30 {
		t.Errorf("other angles changed: %v", e.Rotation)
	}
	if e.Rotation[1] == 20 {
		t.Error("Y angle did not change")
	}
	g.CancelRotate(&e)
	if e.Rotation != (mgl32.Vec3{10, 20, 30}) {
		t.Errorf("cancel left rotation %v", e.Rotation)
	}
}

func TestRotateFree(t *testing.T) {
	e := emitter.Default()
	g := NewGizmo()

	g.StartRotate(RotateFree, 0, &e, 0, 0)
	g.UpdateRotate(&e, 50, -50)
	if e.Rotation[2] <= 0 {
		t.Errorf("horizontal drag should add yaw, got %v", e.Rotation)
	}
	if e.Rotation[0] <= 0 {
		t.Errorf("upward drag should add pitch, got %v", e.Rotation)
	}
	if e.Rotation[1] != 0 {
		t.Errorf("roll changed in free mode: %v", e.Rotation)
	}
}
