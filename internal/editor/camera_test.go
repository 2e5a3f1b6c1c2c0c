package editor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraDefaultPosition(t *testing.T) {
	c := NewCamera()
	// Yaw 180 at pitch 0 puts the eye on -Y at the orbit distance.
	want := mgl32.Vec3{0, -CameraDistance, 0}
	if got := c.Position(); got.Sub(want).Len() > 1e-4 {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestCameraDollyClamp(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 200; i++ {
		c.Update(0, 0, false, false, 1)
	}
	if c.Distance != CameraMinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, CameraMinDistance)
	}
	for i := 0; i < 200; i++ {
		c.Update(0, 0, false, false, -1)
	}
	if c.Distance != CameraMaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, CameraMaxDistance)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera()
	c.Update(0, 0, true, false, 0) // primes the drag anchor
	c.Update(0, 10000, true, false, 0)
	if c.Pitch != CameraPitchLimit {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, CameraPitchLimit)
	}
	c.Update(0, -20000, true, false, 0)
	if c.Pitch != -CameraPitchLimit {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, -CameraPitchLimit)
	}
}

func TestCameraDragAnchorResets(t *testing.T) {
	c := NewCamera()
	c.Update(0, 0, true, false, 0)
	c.Update(100, 0, true, false, 0)
	yaw := c.Yaw

	// Releasing then re-pressing elsewhere must not apply the jump.
	c.Update(500, 0, false, false, 0)
	c.Update(900, 0, true, false, 0)
	if c.Yaw != yaw {
		t.Errorf("yaw jumped on re-press: %v -> %v", yaw, c.Yaw)
	}
}

func TestCameraPanMovesTarget(t *testing.T) {
	c := NewCamera()
	c.Update(0, 0, true, true, 0)
	c.Update(50, 0, true, true, 0)
	if c.Target == (mgl32.Vec3{}) {
		t.Error("pan did not move the target")
	}
	if c.Yaw != CameraYaw {
		t.Errorf("pan changed yaw to %v", c.Yaw)
	}
}

func TestCameraReset(t *testing.T) {
	c := NewCamera()
	c.Target = mgl32.Vec3{1, 2, 3}
	c.Distance = 20
	c.Yaw, c.Pitch = 45, 30
	c.Reset()
	if c.Target != (mgl32.Vec3{}) || c.Distance != CameraDistance || c.Yaw != CameraYaw || c.Pitch != 0 {
		t.Errorf("reset left %v %v %v %v", c.Target, c.Distance, c.Yaw, c.Pitch)
	}
}
