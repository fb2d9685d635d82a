package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// respawnRun tracks one staggered fly-in of the whole catalog
type respawnRun struct {
	total   int
	arrived int
}

// checkRespawn starts the fly-in once every body has been destroyed
func (w *World) checkRespawn() {
	if len(w.bodies) > 0 || w.State.Respawning || w.State.Scattered || len(w.Catalog.Chapters) == 0 {
		return
	}
	w.State.Respawning = true
	w.respawn = &respawnRun{total: len(w.Catalog.Chapters)}
	w.emit(Event{Kind: EventRespawnStarted})

	for i := range w.Catalog.Chapters {
		w.after(time.Duration(i)*RespawnStagger, func() { w.flyIn(i) })
	}
}

// flyIn creates a body far outside the system and tweens it onto its orbit
func (w *World) flyIn(index int) {
	run := w.respawn
	if run == nil {
		return
	}
	b := w.newBody(index)
	target := b.Position

	// enter from the far side of the orbit
	angle := b.OrbitalAngle + math.Pi
	far := RespawnRadiusFactor * MaxOrbitRadius
	start := mgl32.Vec3{
		float32(math.Cos(angle) * far),
		float32((w.rng.Float64()*2 - 1) * RespawnHeight),
		float32(math.Sin(angle) * far),
	}
	b.Position = start
	b.Phase = PhaseFlyingIn
	b.syncLabel()
	w.addBody(b)
	w.addEffect(NewTrail(b.ID, start, b.Color))

	w.addTween(NewTween(start, target, RespawnDuration, CubicOut,
		func(v mgl32.Vec3) {
			b.Position = v
			b.syncLabel()
		},
		func() {
			if _, ok := w.Body(b.ID); !ok {
				// destroyed mid-flight
				w.arrive(run)
				return
			}
			delete(w.State.DestroyedIDs, b.Chapter.ID)
			b.Phase = PhaseOrbiting
			b.Position = b.OrbitPoint(b.OrbitalAngle)
			b.syncLabel()
			w.emit(Event{Kind: EventBodyArrived, Body: b, Position: b.Position})
			w.arrive(run)
		},
	))
}

func (w *World) arrive(run *respawnRun) {
	if w.respawn != run {
		return
	}
	run.arrived++
	if run.arrived < run.total {
		return
	}
	w.respawn = nil
	w.State.Respawning = false
	w.emit(Event{Kind: EventRespawnCompleted})
}
