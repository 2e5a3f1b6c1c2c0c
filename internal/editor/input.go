package editor

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Input tracks key/button edges and accumulates scroll between frames.
type Input struct {
	prevKeys  map[glfw.Key]bool
	prevMouse map[glfw.MouseButton]bool
	scroll    float32
}

func NewInput(window *glfw.Window) *Input {
	in := &Input{
		prevKeys:  make(map[glfw.Key]bool),
		prevMouse: make(map[glfw.MouseButton]bool),
	}
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.scroll += float32(yoff)
	})
	return in
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// TakeScroll returns and clears the scroll accumulated since the last call.
func (in *Input) TakeScroll() float32 {
	s := in.scroll
	in.scroll = 0
	return s
}

// CursorFramebufferPos converts the window-space cursor position to
// framebuffer pixels, which differ on high-DPI displays.
func CursorFramebufferPos(window *glfw.Window, fbW, fbH int) (float32, float32) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return 0, 0
	}
	return float32(cx) * float32(fbW) / float32(winW),
		float32(cy) * float32(fbH) / float32(winH)
}
