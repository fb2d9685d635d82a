package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RequestScatter opens the confirmation dialog, as a sun click would
func (w *World) RequestScatter() error {
	if w.Params.Variant != VariantScatter {
		return ErrWrongVariant
	}
	if w.State.Scattered || !w.State.Interactive() {
		return nil
	}
	w.openDialog(DialogConfirmScatter)
	return nil
}

// Scatter destroys the sun and sends every body drifting outward. Bodies that
// cross ScatterThreshold are lost; once all are lost the game over dialog opens.
func (w *World) Scatter() error {
	if w.Params.Variant != VariantScatter {
		return ErrWrongVariant
	}
	if w.State.Scattered {
		return nil
	}
	w.State.Dialog = DialogNone
	w.State.Scattered = true
	w.clearHover()
	w.motion = false

	w.Sun.Destroyed = true
	w.addEffect(NewExplosion(mgl32.Vec3{}, w.Sun.Color, w.rng))

	for _, b := range w.bodies {
		dir := b.Position
		if dir.Len() < 1e-3 {
			theta := w.rng.Float64() * 2 * math.Pi
			dir = mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))}
		}
		dir = dir.Normalize().Add(mgl32.Vec3{
			float32((w.rng.Float64() - 0.5) * 0.4),
			float32((w.rng.Float64() - 0.5) * 0.4),
			float32((w.rng.Float64() - 0.5) * 0.4),
		}).Normalize()

		speed := ScatterMinSpeed + w.rng.Float64()*(ScatterMaxSpeed-ScatterMinSpeed)
		b.Velocity = dir.Mul(float32(speed))
		b.Drift = mgl32.Vec3{
			float32((w.rng.Float64()*2 - 1) * ScatterMaxDrift),
			float32((w.rng.Float64()*2 - 1) * ScatterMaxDrift),
			float32((w.rng.Float64()*2 - 1) * ScatterMaxDrift),
		}
		b.Phase = PhaseScattering
	}
	w.emit(Event{Kind: EventScatterStarted})
	return nil
}

// Lost counts bodies that have left the scene
func (w *World) Lost() int {
	n := 0
	for _, b := range w.bodies {
		if b.Phase == PhaseLost {
			n++
		}
	}
	return n
}

func (w *World) checkGameOver() {
	if !w.State.Scattered || w.State.Dialog == DialogGameOver {
		return
	}
	if w.Lost() < len(w.bodies) {
		return
	}
	w.State.Dialog = DialogGameOver
	w.emit(Event{Kind: EventGameOver})
	w.emit(Event{Kind: EventDialogOpened, Dialog: DialogGameOver})
}
