package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a turntable orbit camera around a target point, Z-up.
type Camera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // degrees
	Pitch    float32 // degrees

	lastX, lastY float64
	firstMouse   bool
}

func NewCamera() *Camera {
	return &Camera{
		Distance:   CameraDistance,
		Yaw:        CameraYaw,
		firstMouse: true,
	}
}

// Position returns the eye point from the spherical orbit parameters.
func (c *Camera) Position() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	x := c.Distance * math32.Cos(pitch) * math32.Sin(yaw)
	y := c.Distance * math32.Cos(pitch) * math32.Cos(yaw)
	z := c.Distance * math32.Sin(pitch)
	return c.Target.Add(mgl32.Vec3{x, y, z})
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 0, 1})
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(CameraFov), aspect, CameraNear, CameraFar)
}

// Update feeds one frame of mouse state into the orbit. Middle-drag rotates,
// shift+middle-drag pans, scroll dollies.
func (c *Camera) Update(mouseX, mouseY float64, middle, shift bool, scroll float32) {
	if scroll != 0 {
		c.Distance *= 1 - scroll*DollyFactor
		c.Distance = clamp32(c.Distance, CameraMinDistance, CameraMaxDistance)
	}

	if middle {
		if c.firstMouse {
			c.lastX, c.lastY = mouseX, mouseY
			c.firstMouse = false
			return
		}
		dx := float32(mouseX - c.lastX)
		dy := float32(mouseY - c.lastY)

		if shift {
			toEye := c.Position().Sub(c.Target)
			right := toEye.Cross(mgl32.Vec3{0, 0, 1}).Normalize()
			localUp := right.Cross(toEye).Normalize()
			c.Target = c.Target.Add(right.Mul(dx * PanSensitivity * c.Distance))
			c.Target = c.Target.Add(localUp.Mul(dy * PanSensitivity * c.Distance))
		} else {
			c.Yaw += dx * OrbitSensitivity
			c.Pitch += dy * OrbitSensitivity
			c.Pitch = clamp32(c.Pitch, -CameraPitchLimit, CameraPitchLimit)
		}
	} else {
		c.firstMouse = true
	}

	c.lastX, c.lastY = mouseX, mouseY
}

func (c *Camera) Reset() {
	c.Target = mgl32.Vec3{}
	c.Distance = CameraDistance
	c.Yaw = CameraYaw
	c.Pitch = 0
	c.firstMouse = true
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
