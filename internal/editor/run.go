package editor

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// RunDesktop opens the editor window and runs the frame loop until closed.
// modelPath may be empty to start with an empty scene.
func RunDesktop(settings Settings, modelPath string) {
	runtime.LockOSThread()

	window, err := initWindow(settings)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.LineWidth(1)

	textures := NewTextureCache(settings.TextureDir)
	rend, err := NewRenderer(textures)
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	defer textures.Destroy()

	scene := NewScene(settings.MaxParticles, uint64(time.Now().UnixNano()))
	if modelPath != "" {
		if err := scene.Load(modelPath); err != nil {
			log.Printf("%v", err)
		} else if settings.TextureDir == "" {
			textures.SetDirectory(filepath.Dir(modelPath))
		}
	}

	cam := NewCamera()
	gizmo := NewGizmo()
	gizmo.Sensitivity = settings.GizmoSensitivity
	input := NewInput(window)

	var globalAnimTime float32

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - last)
		last = now
		if dt > MaxFrameDt {
			dt = MaxFrameDt
		}

		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		mouseX, mouseY := CursorFramebufferPos(window, fbW, fbH)
		shift := window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
			window.GetKey(glfw.KeyRightShift) == glfw.Press
		ctrl := window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
			window.GetKey(glfw.KeyRightControl) == glfw.Press

		// Camera gets the mouse only when no gizmo operation is active.
		cx, cy := window.GetCursorPos()
		middle := window.GetMouseButton(glfw.MouseButtonMiddle) == glfw.Press
		cam.Update(cx, cy, middle && !gizmo.Active(), shift, input.TakeScroll())

		view := cam.ViewMatrix()
		proj := cam.ProjectionMatrix(float32(fbW) / float32(fbH))

		handleEditKeys(window, input, scene, cam, modelPath, ctrl)
		handleGizmoKeys(window, input, scene, gizmo, shift, mouseX, mouseY)

		sel := scene.Selected
		if gizmo.Active() && sel >= 0 && sel < len(scene.Emitters) {
			e := &scene.Emitters[sel]
			gizmo.UpdateGrab(e, view, mouseX, mouseY)
			gizmo.UpdateScale(e, mouseX, mouseY)
			gizmo.UpdateRotate(e, mouseX, mouseY)
		}

		if input.JustClicked(window, glfw.MouseButtonLeft) {
			if gizmo.Active() {
				gizmo.CommitGrab()
				gizmo.CommitScale()
				gizmo.CommitRotate()
			} else {
				scene.Selected = PickEmitter(scene.Emitters, mouseX, mouseY, fbW, fbH, view, proj)
			}
		}
		if input.JustClicked(window, glfw.MouseButtonRight) && gizmo.Active() {
			if sel >= 0 && sel < len(scene.Emitters) {
				e := &scene.Emitters[sel]
				gizmo.CancelGrab(e)
				gizmo.CancelScale(e)
				gizmo.CancelRotate(e)
			}
		}
		if input.JustPressed(window, glfw.KeyEscape) {
			if gizmo.Active() {
				if sel >= 0 && sel < len(scene.Emitters) {
					e := &scene.Emitters[sel]
					gizmo.CancelGrab(e)
					gizmo.CancelScale(e)
					gizmo.CancelRotate(e)
				}
			} else {
				window.SetShouldClose(true)
				continue
			}
		}

		// Simulate then render each emitter with this frame's dt.
		scene.Sync()
		globalAnimTime += dt

		rend.SetCamera(view, proj)
		rend.BeginFrame(fbW, fbH)
		rend.DrawGrid()
		rend.DrawDummyNode(mgl32.Vec3{})

		for i := range scene.Emitters {
			Step(&scene.Emitters[i], scene.States[i], dt)
			rend.DrawParticles(&scene.Emitters[i], scene.States[i])
		}

		rend.DrawEmitterNodes(scene.Emitters, scene.Selected, globalAnimTime)
		rend.DrawAxisGizmo(fbW, fbH)

		window.SwapBuffers()
	}
}

func handleEditKeys(window *glfw.Window, input *Input, scene *Scene, cam *Camera, modelPath string, ctrl bool) {
	if ctrl && input.JustPressed(window, glfw.KeyN) {
		scene.ResetModel()
	}
	if !ctrl && input.JustPressed(window, glfw.KeyN) {
		scene.AddEmitter()
	}
	if ctrl && input.JustPressed(window, glfw.KeyD) {
		scene.DuplicateEmitter(scene.Selected)
	}
	if input.JustPressed(window, glfw.KeyDelete) {
		scene.RemoveEmitter(scene.Selected)
	}
	if input.JustPressed(window, glfw.KeyHome) {
		cam.Reset()
	}
	if ctrl && input.JustPressed(window, glfw.KeyS) {
		path := modelPath
		if path == "" {
			path = scene.ModelName + ".mdl"
		}
		if err := scene.Save(path); err != nil {
			log.Printf("%v", err)
		} else {
			log.Printf("saved %s", path)
		}
	}
}

func handleGizmoKeys(window *glfw.Window, input *Input, scene *Scene, gizmo *Gizmo, shift bool, mouseX, mouseY float32) {
	sel := scene.Selected
	if sel < 0 || sel >= len(scene.Emitters) {
		return
	}
	e := &scene.Emitters[sel]
	ctrl := window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		window.GetKey(glfw.KeyRightControl) == glfw.Press

	if input.JustPressed(window, glfw.KeyG) && !gizmo.Active() {
		gizmo.StartGrab(GrabFree, sel, e, mouseX, mouseY)
	}
	if !ctrl && !gizmo.Active() && input.JustPressed(window, glfw.KeyS) {
		gizmo.StartScale(sel, e, mouseX, mouseY)
	}
	if input.JustPressed(window, glfw.KeyR) && !gizmo.Active() {
		gizmo.StartRotate(RotateFree, sel, e, mouseX, mouseY)
	}

	// Axis keys refine the active constraint without resetting the start
	// value; shift selects the complementary plane for grabs.
	if gizmo.Grab != GrabNone {
		if input.JustPressed(window, glfw.KeyX) {
			if shift {
				gizmo.StartGrab(GrabYZ, sel, e, mouseX, mouseY)
			} else {
				gizmo.StartGrab(GrabX, sel, e, mouseX, mouseY)
			}
		}
		if input.JustPressed(window, glfw.KeyY) {
			if shift {
				gizmo.StartGrab(GrabXZ, sel, e, mouseX, mouseY)
			} else {
				gizmo.StartGrab(GrabY, sel, e, mouseX, mouseY)
			}
		}
		if input.JustPressed(window, glfw.KeyZ) {
			if shift {
				gizmo.StartGrab(GrabXY, sel, e, mouseX, mouseY)
			} else {
				gizmo.StartGrab(GrabZ, sel, e, mouseX, mouseY)
			}
		}
	}
	if gizmo.Rotate != RotateNone {
		if input.JustPressed(window, glfw.KeyX) {
			gizmo.StartRotate(RotateX, sel, e, mouseX, mouseY)
		}
		if input.JustPressed(window, glfw.KeyY) {
			gizmo.StartRotate(RotateY, sel, e, mouseX, mouseY)
		}
		if input.JustPressed(window, glfw.KeyZ) {
			gizmo.StartRotate(RotateZ, sel, e, mouseX, mouseY)
		}
	}
}
