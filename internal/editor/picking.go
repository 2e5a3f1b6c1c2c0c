package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// MouseRay unprojects a screen point into a world-space ray: origin at the
// camera eye, direction through the cursor.
func MouseRay(mouseX, mouseY float32, fbW, fbH int, view, proj mgl32.Mat4) (origin, dir mgl32.Vec3) {
	ndcX := 2*mouseX/float32(fbW) - 1
	ndcY := 1 - 2*mouseY/float32(fbH)

	eye := proj.Inv().Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	eye = mgl32.Vec4{eye[0], eye[1], -1, 0}

	invView := view.Inv()
	dir = invView.Mul4x1(eye).Vec3().Normalize()
	origin = invView.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	return origin, dir
}

// raySphere returns the nearest positive hit distance, or -1 on miss.
func raySphere(origin, dir, center mgl32.Vec3, radius float32) float32 {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return -1
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return -1
	}
	return t
}

// PickEmitter returns the index of the closest emitter hit by the ray
// through the given screen point, or -1. Each emitter is tested as a sphere
// around its position and, when it emits, as a sampled cone along its
// emission axis.
func PickEmitter(emitters []emitter.Node, mouseX, mouseY float32, fbW, fbH int, view, proj mgl32.Mat4) int {
	origin, dir := MouseRay(mouseX, mouseY, fbW, fbH, view, proj)

	best := -1
	bestDist := float32(math32.MaxFloat32)

	for i := range emitters {
		e := &emitters[i]

		footprint := e.XSize
		if e.YSize > footprint {
			footprint = e.YSize
		}
		radius := footprint*0.5 + PickMargin
		if radius < PickMinRadius {
			radius = PickMinRadius
		}
		if t := raySphere(origin, dir, e.Position, radius); t >= 0 && t < bestDist {
			bestDist = t
			best = i
		}

		// Emission cone: spheres spaced along the local +Z axis, growing
		// with the half-spread angle.
		if e.Velocity > 0 && e.Spread > 0 {
			axis := e.Orientation().Rotate(mgl32.Vec3{0, 0, 1})
			halfTan := math32.Tan(mgl32.DegToRad(e.Spread * 0.5))
			for s := 1; s <= PickConeSamples; s++ {
				d := float32(s) / PickConeSamples * ArrowLength
				center := e.Position.Add(axis.Mul(d))
				cr := d*halfTan + 0.1
				if t := raySphere(origin, dir, center, cr); t >= 0 && t < bestDist {
					bestDist = t
					best = i
				}
			}
		}
	}
	return best
}
