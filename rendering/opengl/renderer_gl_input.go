package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"galaxy/rendering"
)

func (r *Renderer) installCallbacks() {
	r.window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		r.onResize(width, height)
	})

	r.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.fbWidth, r.fbHeight = width, height
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	r.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		r.onKey(key, action)
	})

	r.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		r.onMouseButton(button, action)
	})

	r.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if r.handler != nil {
			r.handler.PointerMove(xpos, ypos)
		}
	})
}

// onResize handles window resize
func (r *Renderer) onResize(width, height int) {
	if width == 0 || height == 0 {
		return // minimized
	}
	r.width, r.height = width, height
	r.panels.UpdateSize(width, height)
	if r.handler != nil {
		r.handler.Resize(width, height)
	}
}

// onKey maps keys to app actions. Escape backs out of the detail view
// instead of quitting; Q quits.
func (r *Renderer) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyQ {
		r.window.SetShouldClose(true)
		return
	}
	if r.handler == nil {
		return
	}
	switch key {
	case glfw.KeyEscape:
		r.handler.KeyPressed(rendering.KeyEscape)
	case glfw.KeyM, glfw.KeySpace:
		r.handler.KeyPressed(rendering.KeyToggleMotion)
	case glfw.KeyR:
		r.handler.KeyPressed(rendering.KeyReset)
	}
}

// onMouseButton turns a left press into a click at the cursor
func (r *Renderer) onMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft || action != glfw.Press || r.handler == nil {
		return
	}
	x, y := r.window.GetCursorPos()
	r.handler.PointerClick(x, y)
}
