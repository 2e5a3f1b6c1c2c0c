package editor

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Each particle vertex: position(3) + texcoord(2) + color(4) + size(1) +
// velocity(3) + age(1).
const vertexStride = 14

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	particleProg uint32
	particleVAO  uint32
	particleVBO  uint32
	vboCap       int // floats

	uView       int32
	uProj       int32
	uRenderMode int32
	uXGrid      int32
	uYGrid      int32
	uFps        int32
	uFrameStart int32
	uFrameEnd   int32
	uHasTexture int32
	uParticles  int32

	lineProg uint32
	lineVAO  uint32
	lineVBO  uint32
	lineCap  int

	lnUView  int32
	lnUProj  int32
	lnUModel int32
	lnUColor int32

	view mgl32.Mat4
	proj mgl32.Mat4

	textures *TextureCache

	// Reusable vertex buffers to avoid per-frame heap allocations.
	particleBuf []float32
	lineBuf     []float32
}

func NewRenderer(textures *TextureCache) (*Renderer, error) {
	particleProg, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		return nil, fmt.Errorf("particle program: %w", err)
	}
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(particleProg)
		return nil, fmt.Errorf("line program: %w", err)
	}

	r := &Renderer{
		particleProg: particleProg,
		lineProg:     lineProg,
		view:         mgl32.Ident4(),
		proj:         mgl32.Ident4(),
		textures:     textures,
	}

	// Particle VAO/VBO: streaming buffer, 6 vertices per particle.
	var pVAO, pVBO uint32
	gl.GenVertexArrays(1, &pVAO)
	gl.GenBuffers(1, &pVBO)
	gl.BindVertexArray(pVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, pVBO)

	r.vboCap = vertexStride * 6 * 1024
	gl.BufferData(gl.ARRAY_BUFFER, r.vboCap*4, nil, gl.STREAM_DRAW)

	stride := int32(vertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(5*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(9*4))
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 3, gl.FLOAT, false, stride, glOffset(10*4))
	gl.EnableVertexAttribArray(5)
	gl.VertexAttribPointer(5, 1, gl.FLOAT, false, stride, glOffset(13*4))
	r.particleVAO = pVAO
	r.particleVBO = pVBO

	gl.UseProgram(particleProg)
	r.uView = gl.GetUniformLocation(particleProg, gl.Str("view\x00"))
	r.uProj = gl.GetUniformLocation(particleProg, gl.Str("projection\x00"))
	r.uRenderMode = gl.GetUniformLocation(particleProg, gl.Str("renderMode\x00"))
	r.uXGrid = gl.GetUniformLocation(particleProg, gl.Str("xGrid\x00"))
	r.uYGrid = gl.GetUniformLocation(particleProg, gl.Str("yGrid\x00"))
	r.uFps = gl.GetUniformLocation(particleProg, gl.Str("fps\x00"))
	r.uFrameStart = gl.GetUniformLocation(particleProg, gl.Str("frameStart\x00"))
	r.uFrameEnd = gl.GetUniformLocation(particleProg, gl.Str("frameEnd\x00"))
	r.uHasTexture = gl.GetUniformLocation(particleProg, gl.Str("hasTexture\x00"))
	r.uParticles = gl.GetUniformLocation(particleProg, gl.Str("particleTexture\x00"))
	gl.Uniform1i(r.uParticles, 0)

	// Line VAO/VBO: position only.
	var lVAO, lVBO uint32
	gl.GenVertexArrays(1, &lVAO)
	gl.GenBuffers(1, &lVBO)
	gl.BindVertexArray(lVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, lVBO)

	r.lineCap = 3 * 256
	gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*4, nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))
	r.lineVAO = lVAO
	r.lineVBO = lVBO

	gl.UseProgram(lineProg)
	r.lnUView = gl.GetUniformLocation(lineProg, gl.Str("view\x00"))
	r.lnUProj = gl.GetUniformLocation(lineProg, gl.Str("projection\x00"))
	r.lnUModel = gl.GetUniformLocation(lineProg, gl.Str("model\x00"))
	r.lnUColor = gl.GetUniformLocation(lineProg, gl.Str("lineColor\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.particleVBO, r.lineVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.particleVAO, r.lineVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.particleProg, r.lineProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// SetCamera stores this frame's view and projection matrices.
func (r *Renderer) SetCamera(view, proj mgl32.Mat4) {
	r.view = view
	r.proj = proj
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0.15, 0.15, 0.15, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawParticles batches every active particle of one emitter into the
// streaming VBO and issues a single draw. Depth writes are off so stacked
// transparents blend; the blend function follows the emitter's blend mode.
func (r *Renderer) DrawParticles(e *emitter.Node, s *EmitterState) {
	buf := r.particleBuf[:0]
	for i := range s.Particles {
		p := &s.Particles[i]
		if !p.Active {
			continue
		}
		age := p.Age()
		for _, uv := range quadCorners {
			buf = append(buf,
				p.Position[0], p.Position[1], p.Position[2],
				uv[0], uv[1],
				p.Color[0], p.Color[1], p.Color[2], p.Color[3],
				p.Size,
				p.Velocity[0], p.Velocity[1], p.Velocity[2],
				age)
		}
	}
	r.particleBuf = buf
	if len(buf) == 0 {
		return
	}

	gl.UseProgram(r.particleProg)
	gl.UniformMatrix4fv(r.uView, 1, false, &r.view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &r.proj[0])
	gl.Uniform1i(r.uRenderMode, int32(e.Render))
	gl.Uniform1i(r.uXGrid, int32(e.XGrid))
	gl.Uniform1i(r.uYGrid, int32(e.YGrid))
	fps := e.FPS
	if fps <= 0 {
		fps = 1
	}
	gl.Uniform1f(r.uFps, fps)
	gl.Uniform1f(r.uFrameStart, e.FrameStart)
	frameEnd := e.FrameEnd
	if frameEnd <= 0 {
		frameEnd = float32(e.XGrid*e.YGrid - 1)
	}
	gl.Uniform1f(r.uFrameEnd, frameEnd)

	tex := r.textures.Get(e)
	if tex != 0 {
		gl.Uniform1i(r.uHasTexture, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	} else {
		gl.Uniform1i(r.uHasTexture, 0)
	}

	switch e.Blend {
	case emitter.BlendLighten:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	if len(buf) > r.vboCap {
		r.vboCap = len(buf) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.vboCap*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(buf)*4, gl.Ptr(&buf[0]))

	gl.DepthMask(false)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(buf)/vertexStride))
	gl.DepthMask(true)

	gl.BindVertexArray(0)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// Two triangles per particle; the vertex stage expands corners by UV.
var quadCorners = [6][2]float32{
	{0, 0}, {1, 0}, {1, 1},
	{0, 0}, {1, 1}, {0, 1},
}

// drawLines uploads position-only vertices and draws them with the line
// program under the given model transform and color.
func (r *Renderer) drawLines(verts []float32, model mgl32.Mat4, color mgl32.Vec3) {
	if len(verts) == 0 {
		return
	}
	gl.UseProgram(r.lineProg)
	gl.UniformMatrix4fv(r.lnUView, 1, false, &r.view[0])
	gl.UniformMatrix4fv(r.lnUProj, 1, false, &r.proj[0])
	gl.UniformMatrix4fv(r.lnUModel, 1, false, &model[0])
	gl.Uniform3f(r.lnUColor, color[0], color[1], color[2])

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(verts) > r.lineCap {
		r.lineCap = len(verts) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*4, nil, gl.STREAM_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindVertexArray(0)
}

// drawScreenLines draws lines in pixel coordinates with an orthographic
// projection and no depth test, for the corner axis gizmo.
func (r *Renderer) drawScreenLines(verts []float32, fbW, fbH int, color mgl32.Vec3) {
	if len(verts) == 0 {
		return
	}
	gl.UseProgram(r.lineProg)
	ident := mgl32.Ident4()
	ortho := mgl32.Ortho(0, float32(fbW), 0, float32(fbH), -1, 1)
	gl.UniformMatrix4fv(r.lnUView, 1, false, &ident[0])
	gl.UniformMatrix4fv(r.lnUProj, 1, false, &ortho[0])
	gl.UniformMatrix4fv(r.lnUModel, 1, false, &ident[0])
	gl.Uniform3f(r.lnUColor, color[0], color[1], color[2])

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))

	gl.Disable(gl.DEPTH_TEST)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.Enable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
}
