package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"galaxy/core"
	"galaxy/rendering"
	"galaxy/ui"
)

// drawOverlay draws chapter labels, then the overlay panels on top
func (r *Renderer) drawOverlay(w *core.World, o *ui.Overlay) {
	r.panels.Begin()
	for _, l := range rendering.Labels(w, o, r.width, r.height) {
		r.panels.Draw(l.Panel, l.Rect(), 1)
	}
	for _, p := range o.Panels() {
		r.panels.Draw(p, p.Rect, p.Opacity)
	}
	r.panels.End()
}

// RenderStatus draws only the full screen status panel, used while loading
// and when startup failed
func (r *Renderer) RenderStatus(o *ui.Overlay) {
	gl.Viewport(0, 0, int32(r.fbWidth), int32(r.fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.panels.Begin()
	for _, p := range o.Panels() {
		r.panels.Draw(p, p.Rect, p.Opacity)
	}
	r.panels.End()
	r.window.SwapBuffers()
}
