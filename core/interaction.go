package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pick returns the nearest orbiting body under the ray
func (w *World) Pick(r Ray) (*Body, bool) {
	var (
		best  *Body
		bestT float32
	)
	for _, b := range w.bodies {
		if b.Phase != PhaseOrbiting {
			continue
		}
		if t, ok := b.Hit(r); ok && (best == nil || t < bestT) {
			best, bestT = b, t
		}
	}
	return best, best != nil
}

// sunHit reports whether the ray strikes the sun in front of every body
func (w *World) sunHit(r Ray) bool {
	if w.Sun.Destroyed {
		return false
	}
	_, ok := r.IntersectSphere(mgl32.Vec3{}, w.Sun.Radius)
	return ok
}

// PointerMove updates hover highlight and cursor for a pointer at pixel (x, y).
// It is ignored entirely while zoomed, transitioning or behind a dialog.
func (w *World) PointerMove(x, y float64, width, height int) {
	if !w.State.Interactive() {
		return
	}
	r := w.Camera.ScreenRay(x, y, width, height)

	if b, ok := w.Pick(r); ok {
		w.State.SunHovered = false
		w.setHover(b)
		return
	}
	w.clearHover()
	if w.Params.Variant == VariantScatter && !w.State.Scattered && w.sunHit(r) {
		w.State.SunHovered = true
		w.State.Cursor = CursorPointer
	}
}

// PointerClick starts a zoom on the body under the pointer. In the scatter
// variant clicking the sun asks for confirmation first.
func (w *World) PointerClick(x, y float64, width, height int) {
	if !w.State.Interactive() {
		return
	}
	r := w.Camera.ScreenRay(x, y, width, height)

	if b, ok := w.Pick(r); ok {
		_ = w.ShowDetail(b.ID)
		return
	}
	if w.Params.Variant == VariantScatter && !w.State.Scattered && w.sunHit(r) {
		w.openDialog(DialogConfirmScatter)
	}
}

func (w *World) setHover(b *Body) {
	if w.State.Hovered == b.ID {
		return
	}
	w.clearHover()
	w.State.Hovered = b.ID
	w.State.Cursor = CursorPointer
	b.GlowOpacity = GlowHoverOpacity
	w.emit(Event{Kind: EventHoverChanged, Body: b, Position: b.Position})
}

func (w *World) clearHover() {
	w.State.SunHovered = false
	w.State.Cursor = CursorDefault
	if w.State.Hovered == 0 {
		return
	}
	prev := w.State.Hovered
	w.State.Hovered = 0
	if b, ok := w.Body(prev); ok {
		b.GlowOpacity = 0
	}
	w.emit(Event{Kind: EventHoverChanged})
}

func (w *World) openDialog(d Dialog) {
	w.clearHover()
	w.State.Dialog = d
	w.emit(Event{Kind: EventDialogOpened, Dialog: d})
}

// CancelDialog closes the confirmation dialog. The game over dialog only
// closes through Reset.
func (w *World) CancelDialog() {
	if w.State.Dialog == DialogConfirmScatter {
		w.State.Dialog = DialogNone
	}
}
