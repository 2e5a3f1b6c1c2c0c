package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

const (
	fbW = 1280
	fbH = 800
)

func testProj() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(CameraFov), float32(fbW)/float32(fbH), CameraNear, CameraFar)
}

func TestMouseRayCenter(t *testing.T) {
	view := frontView()
	origin, dir := MouseRay(fbW/2, fbH/2, fbW, fbH, view, testProj())

	if origin.Sub(mgl32.Vec3{0, -5, 0}).Len() > 1e-4 {
		t.Errorf("origin = %v, want camera eye", origin)
	}
	// Through the screen center the ray is the camera forward axis.
	if dir.Sub(mgl32.Vec3{0, 1, 0}).Len() > 1e-4 {
		t.Errorf("dir = %v, want +Y", dir)
	}
}

func TestRaySphere(t *testing.T) {
	origin := mgl32.Vec3{0, -5, 0}
	dir := mgl32.Vec3{0, 1, 0}

	if d := raySphere(origin, dir, mgl32.Vec3{}, 1); mgl32.Abs(d-4) > 1e-4 {
		t.Errorf("front hit = %v, want 4", d)
	}
	if d := raySphere(origin, dir, mgl32.Vec3{10, 0, 0}, 1); d != -1 {
		t.Errorf("miss = %v, want -1", d)
	}
	// Sphere behind the ray.
	if d := raySphere(origin, dir, mgl32.Vec3{0, -20, 0}, 1); d != -1 {
		t.Errorf("behind = %v, want -1", d)
	}
	// Origin inside: nearest positive root.
	if d := raySphere(origin, dir, mgl32.Vec3{0, -5, 0}, 2); mgl32.Abs(d-2) > 1e-4 {
		t.Errorf("inside = %v, want 2", d)
	}
}

func TestPickEmitterHitAndMiss(t *testing.T) {
	e := emitter.Default()
	e.Position = mgl32.Vec3{}
	list := []emitter.Node{e}
	view := frontView()
	proj := testProj()

	if got := PickEmitter(list, fbW/2, fbH/2, fbW, fbH, view, proj); got != 0 {
		t.Errorf("center pick = %d, want 0", got)
	}
	if got := PickEmitter(list, 5, 5, fbW, fbH, view, proj); got != -1 {
		t.Errorf("corner pick = %d, want -1", got)
	}
}

func TestPickEmitterClosestWins(t *testing.T) {
	near := emitter.Default()
	near.Position = mgl32.Vec3{0, -2, 0}
	far := emitter.Default()
	far.Position = mgl32.Vec3{}

	view := frontView()
	proj := testProj()

	got := PickEmitter([]emitter.Node{far, near}, fbW/2, fbH/2, fbW, fbH, view, proj)
	if got != 1 {
		t.Errorf("pick = %d, want the nearer emitter 1", got)
	}
}

func TestPickEmitterConeHit(t *testing.T) {
	e := emitter.Default()
	e.Position = mgl32.Vec3{}
	e.Velocity = 1
	e.Spread = 90
	list := []emitter.Node{e}

	// Camera above, looking down -Z: the emission cone points straight at
	// the viewer and a ray offset from the node sphere still lands inside
	// the sampled cone.
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := testProj()

	// 0.8 world units off-axis: outside the pick sphere at the node but
	// inside the widening cone near the end of the emission axis.
	offCenter := mgl32.Project(mgl32.Vec3{0.8, 0, 0.9}, view, proj, 0, 0, fbW, fbH)
	got := PickEmitter(list, offCenter.X(), float32(fbH)-offCenter.Y(), fbW, fbH, view, proj)
	if got != 0 {
		t.Errorf("cone pick = %d, want 0", got)
	}
}
