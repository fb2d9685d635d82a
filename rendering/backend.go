// Package rendering defines what a window backend must provide and the
// backend independent pieces of a frame: input routing, label placement
// and point batches for stars and particles.
package rendering

import (
	"galaxy/core"
	"galaxy/ui"
)

// Key is a backend neutral key press the app reacts to
type Key int

const (
	KeyEscape Key = iota
	KeyToggleMotion
	KeyReset
)

// InputHandler receives pointer and keyboard input in window pixels
type InputHandler interface {
	PointerMove(x, y float64)
	PointerClick(x, y float64)
	KeyPressed(k Key)
	Resize(width, height int)
}

// Backend owns a window and draws the world into it. All methods must be
// called from the thread that created it.
type Backend interface {
	ShouldClose() bool
	PollEvents()
	Size() (width, height int)
	SetInputHandler(h InputHandler)
	SetCursor(c core.Cursor)

	// Render draws one full frame: sky, sun, bodies, effects, labels, overlay
	Render(w *core.World, o *ui.Overlay)
	// RenderStatus draws only the overlay's full screen status panel
	RenderStatus(o *ui.Overlay)

	// OnWorldEvent releases GPU resources of removed bodies
	OnWorldEvent(e core.Event)
	Terminate()
}
