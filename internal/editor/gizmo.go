package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// GrabMode constrains a translation to an axis or a plane.
type GrabMode int

const (
	GrabNone GrabMode = iota
	GrabFree
	GrabX
	GrabY
	GrabZ
	GrabYZ
	GrabXZ
	GrabXY
)

// ScaleMode is uniform-only; vertical mouse movement drives both footprint
// axes.
type ScaleMode int

const (
	ScaleNone ScaleMode = iota
	ScaleUniform
)

// RotationMode constrains a rotation to one angle or free yaw/pitch.
type RotationMode int

const (
	RotateNone RotationMode = iota
	RotateFree
	RotateX
	RotateY
	RotateZ
)

// Gizmo holds the transform-operation state machines. At most one of the
// three operations is active at a time; the caller enforces that by not
// starting a second one.
type Gizmo struct {
	Sensitivity float32

	Grab       GrabMode
	grabTarget int
	grabStart  mgl32.Vec3
	grabMouse  mgl32.Vec2

	Scale       ScaleMode
	scaleTarget int
	scaleStartX float32
	scaleStartY float32
	scaleMouse  mgl32.Vec2

	Rotate       RotationMode
	rotateTarget int
	rotateStart  mgl32.Vec3
	rotateMouse  mgl32.Vec2
}

func NewGizmo() *Gizmo {
	return &Gizmo{Sensitivity: GizmoSensitivity}
}

// Active reports whether any operation is in progress.
func (g *Gizmo) Active() bool {
	return g.Grab != GrabNone || g.Scale != ScaleNone || g.Rotate != RotateNone
}

// StartGrab begins translating emitter index target. When a grab is already
// active this only switches the constraint, keeping the captured start
// position so cycling constraints mid-drag stays relative to the original.
func (g *Gizmo) StartGrab(mode GrabMode, target int, e *emitter.Node, mouseX, mouseY float32) {
	if g.Grab != GrabNone && g.grabTarget == target {
		g.Grab = mode
		return
	}
	g.Grab = mode
	g.grabTarget = target
	g.grabStart = e.Position
	g.grabMouse = mgl32.Vec2{mouseX, mouseY}
}

// UpdateGrab recomputes the emitter position from the total cursor delta
// since activation.
func (g *Gizmo) UpdateGrab(e *emitter.Node, view mgl32.Mat4, mouseX, mouseY float32) {
	if g.Grab == GrabNone {
		return
	}
	dx := (mouseX - g.grabMouse[0]) * g.Sensitivity
	dy := (mouseY - g.grabMouse[1]) * g.Sensitivity

	// Camera right/up from the view matrix rows; screen Y grows downward.
	right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
	up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
	offset := right.Mul(dx).Add(up.Mul(-dy))

	switch g.Grab {
	case GrabX:
		offset = mgl32.Vec3{offset[0], 0, 0}
	case GrabY:
		offset = mgl32.Vec3{0, offset[1], 0}
	case GrabZ:
		offset = mgl32.Vec3{0, 0, offset[2]}
	case GrabYZ:
		offset[0] = 0
	case GrabXZ:
		offset[1] = 0
	case GrabXY:
		offset[2] = 0
	}

	e.Position = g.grabStart.Add(offset)
}

// CommitGrab keeps the current position and deactivates.
func (g *Gizmo) CommitGrab() {
	g.Grab = GrabNone
}

// CancelGrab restores the pre-grab position and deactivates.
func (g *Gizmo) CancelGrab(e *emitter.Node) {
	if g.Grab == GrabNone {
		return
	}
	e.Position = g.grabStart
	g.Grab = GrabNone
}

// StartScale begins uniform footprint scaling.
func (g *Gizmo) StartScale(target int, e *emitter.Node, mouseX, mouseY float32) {
	if g.Scale != ScaleNone && g.scaleTarget == target {
		return
	}
	g.Scale = ScaleUniform
	g.scaleTarget = target
	g.scaleStartX = e.XSize
	g.scaleStartY = e.YSize
	g.scaleMouse = mgl32.Vec2{mouseX, mouseY}
}

// UpdateScale applies the vertical cursor delta as a common scale factor on
// both footprint axes, clamped to [ScaleMin, ScaleMax].
func (g *Gizmo) UpdateScale(e *emitter.Node, mouseX, mouseY float32) {
	if g.Scale == ScaleNone {
		return
	}
	dy := mouseY - g.scaleMouse[1]
	factor := 1 + (-dy * g.Sensitivity)
	e.XSize = clamp32(g.scaleStartX*factor, ScaleMin, ScaleMax)
	e.YSize = clamp32(g.scaleStartY*factor, ScaleMin, ScaleMax)
}

func (g *Gizmo) CommitScale() {
	g.Scale = ScaleNone
}

func (g *Gizmo) CancelScale(e *emitter.Node) {
	if g.Scale == ScaleNone {
		return
	}
	e.XSize = g.scaleStartX
	e.YSize = g.scaleStartY
	g.Scale = ScaleNone
}

// StartRotate begins rotating; like grab, re-entering switches the
// constraint without resetting the captured start angles.
func (g *Gizmo) StartRotate(mode RotationMode, target int, e *emitter.Node, mouseX, mouseY float32) {
	if g.Rotate != RotateNone && g.rotateTarget == target {
		g.Rotate = mode
		return
	}
	g.Rotate = mode
	g.rotateTarget = target
	g.rotateStart = e.Rotation
	g.rotateMouse = mgl32.Vec2{mouseX, mouseY}
}

// UpdateRotate maps cursor deltas onto the rotation angles in degrees.
// Free mode drives yaw from horizontal and pitch from inverted vertical
// movement; roll is untouched since 2D input cannot disambiguate it.
func (g *Gizmo) UpdateRotate(e *emitter.Node, mouseX, mouseY float32) {
	if g.Rotate == RotateNone {
		return
	}
	dx := (mouseX - g.rotateMouse[0]) * g.Sensitivity * 100
	dy := (mouseY - g.rotateMouse[1]) * g.Sensitivity * 100

	rot := g.rotateStart
	switch g.Rotate {
	case RotateFree:
		rot[2] += dx
		rot[0] += -dy
	case RotateX:
		rot[0] += -dy
	case RotateY:
		rot[1] += dx
	case RotateZ:
		rot[2] += dx
	}
	e.Rotation = rot
}

func (g *Gizmo) CommitRotate() {
	g.Rotate = RotateNone
}

func (g *Gizmo) CancelRotate(e *emitter.Node) {
	if g.Rotate == RotateNone {
		return
	}
	e.Rotation = g.rotateStart
	g.Rotate = RotateNone
}
