package rendering

import (
	"galaxy/core"
	"galaxy/ui"
)

// Controller routes window input to the overlay first and to the world
// only when no panel claimed it.
type Controller struct {
	World   *core.World
	Overlay *ui.Overlay

	width, height int
	overButton    bool
}

// NewController wires a world and overlay for a window of the given size
func NewController(w *core.World, o *ui.Overlay, width, height int) *Controller {
	c := &Controller{World: w, Overlay: o}
	c.Resize(width, height)
	return c
}

func (c *Controller) PointerMove(x, y float64) {
	c.overButton = c.Overlay.ButtonAt(x, y) != ui.ButtonNone
	if c.World == nil {
		return
	}
	c.World.PointerMove(x, y, c.width, c.height)
}

func (c *Controller) PointerClick(x, y float64) {
	if c.World == nil || c.Overlay.HandleClick(c.World, x, y) {
		return
	}
	c.World.PointerClick(x, y, c.width, c.height)
}

func (c *Controller) KeyPressed(k Key) {
	if c.World == nil {
		return
	}
	switch k {
	case KeyEscape:
		c.Overlay.Escape(c.World)
	case KeyToggleMotion:
		c.World.SetMotionEnabled(!c.World.MotionEnabled())
	case KeyReset:
		if c.World.State.Interactive() || c.World.State.Dialog == core.DialogGameOver {
			c.World.Reset()
		}
	}
}

func (c *Controller) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
	c.Overlay.Resize(width, height)
}

// Cursor is the pointer the window should show: a hand over buttons or
// hoverable bodies.
func (c *Controller) Cursor() core.Cursor {
	if c.overButton {
		return core.CursorPointer
	}
	if c.World == nil || c.Overlay.Status() != "" {
		return core.CursorDefault
	}
	return c.World.State.Cursor
}
