package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// DrawGrid renders the ground-plane grid with brighter main axes.
func (r *Renderer) DrawGrid() {
	step := GridExtent / float32(GridLines-1) * 2
	grid := r.lineBuf[:0]
	for i := 0; i < GridLines; i++ {
		pos := -float32(GridExtent) + float32(i)*step
		grid = append(grid,
			-GridExtent, pos, 0, GridExtent, pos, 0,
			pos, -GridExtent, 0, pos, GridExtent, 0)
	}
	r.lineBuf = grid
	r.drawLines(grid, mgl32.Ident4(), mgl32.Vec3{0.4, 0.4, 0.4})

	axes := []float32{
		-GridExtent, 0, 0, GridExtent, 0, 0,
		0, -GridExtent, 0, 0, GridExtent, 0,
	}
	r.drawLines(axes, mgl32.Ident4(), mgl32.Vec3{0.7, 0.7, 0.7})
}

// DrawDummyNode renders the root node marker as a yellow 3D cross.
func (r *Renderer) DrawDummyNode(pos mgl32.Vec3) {
	s := float32(DummyCrossSize)
	verts := []float32{
		-s, 0, 0, s, 0, 0,
		0, -s, 0, 0, s, 0,
		0, 0, -s, 0, 0, s,
	}
	r.drawLines(verts, mgl32.Translate3D(pos[0], pos[1], pos[2]), mgl32.Vec3{1, 1, 0})
}

// DrawEmitterNodes renders wireframe markers for every emitter, bright cyan
// for the selected one.
func (r *Renderer) DrawEmitterNodes(emitters []emitter.Node, selected int, animTime float32) {
	for i := range emitters {
		color := mgl32.Vec3{0, 0.4, 0.4}
		if i == selected {
			color = mgl32.Vec3{0, 1, 1}
		}
		r.drawEmitterNode(&emitters[i], color, animTime)
	}
}

func (r *Renderer) drawEmitterNode(e *emitter.Node, color mgl32.Vec3, animTime float32) {
	pos := e.AnimatedPosition(animTime)
	model := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(e.Orientation().Mat4())

	var verts []float32
	if e.XSize > 0 || e.YSize > 0 {
		hx, hy := e.XSize*0.5, e.YSize*0.5
		verts = []float32{
			-hx, -hy, 0, hx, -hy, 0,
			hx, -hy, 0, hx, hy, 0,
			hx, hy, 0, -hx, hy, 0,
			-hx, hy, 0, -hx, -hy, 0,
		}
	} else {
		s := float32(PointCrossSize)
		verts = []float32{
			-s, 0, 0, s, 0, 0,
			0, -s, 0, 0, s, 0,
		}
	}

	// Direction arrow along local +Z plus cone lines at half spread.
	if e.Velocity > 0 {
		verts = append(verts, 0, 0, 0, 0, 0, ArrowLength)
		if e.Spread > 0 {
			half := mgl32.DegToRad(e.Spread * 0.5)
			sx := math32.Sin(half) * ArrowLength
			sz := math32.Cos(half) * ArrowLength
			verts = append(verts,
				0, 0, 0, -sx, 0, sz,
				0, 0, 0, sx, 0, sz,
				0, 0, 0, 0, -sx, sz,
				0, 0, 0, 0, sx, sz)
		}
	}

	r.drawLines(verts, model, color)
}

// Axis indicator directions and colors: bright for positive, dark for
// negative, red/green/blue for X/Y/Z.
var axisGizmoDirs = [6]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

var axisGizmoColors = [6]mgl32.Vec3{
	{1, 0.4, 0.4}, {0.7, 0.3, 0.3},
	{0.4, 1, 0.4}, {0.3, 0.7, 0.3},
	{0.4, 0.4, 1}, {0.3, 0.3, 0.7},
}

// DrawAxisGizmo renders the corner orientation indicator. Arm endpoints are
// world axis directions pushed through the view rotation only, so the gizmo
// tracks camera orientation but not position.
func (r *Renderer) DrawAxisGizmo(fbW, fbH int) {
	cx := float32(fbW) - AxisGizmoInset
	cy := float32(AxisGizmoInset)

	for i, dir := range axisGizmoDirs {
		d := r.view.Mul4x1(mgl32.Vec4{dir[0], dir[1], dir[2], 0})
		ex := cx + d[0]*AxisGizmoSize
		ey := cy + d[1]*AxisGizmoSize
		r.drawScreenLines([]float32{cx, cy, 0, ex, ey, 0}, fbW, fbH, axisGizmoColors[i])
	}
}
