package core

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrTransitionInFlight = errors.New("camera transition already in flight")
	ErrUnknownBody        = errors.New("unknown body")
	ErrWrongVariant       = errors.New("operation not available in this variant")
)

// World owns the scene: bodies, sun, sky, camera, effects and the
// interaction state. It is not safe for concurrent use; everything runs on
// the render loop's goroutine.
type World struct {
	Catalog *Catalog
	Params  Params
	Camera  *Camera
	Sky     *Sky
	Sun     *Sun
	State   InteractionState

	bodies      []*Body
	effects     []Effect
	tweens      []*Tween
	timers      []*timer
	cameraTween *Tween
	respawn     *respawnRun

	factory   *bodyFactory
	rng       *rand.Rand
	nextID    BodyID
	listeners []Listener
	motion    bool
	torn      bool

	frame   uint64
	elapsed time.Duration
}

// NewWorld validates the catalog and builds one body per chapter
func NewWorld(cat *Catalog, p Params) (*World, error) {
	if cat == nil {
		return nil, ErrEmptyCatalog
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		Catalog: cat,
		Params:  p,
		Camera:  NewCamera(),
		Sky:     NewSky(rng),
		Sun:     newSun(),
		State:   newInteractionState(),
		rng:     rng,
		motion:  p.MotionEnabled,
		factory: newBodyFactory(cat, p, rng),
	}
	w.populate()
	return w, nil
}

// Subscribe registers a listener. Listeners added after construction can
// catch up through Bodies.
func (w *World) Subscribe(l Listener) {
	w.listeners = append(w.listeners, l)
}

func (w *World) emit(e Event) {
	for _, l := range w.listeners {
		l.OnWorldEvent(e)
	}
}

func (w *World) populate() {
	for i := range w.Catalog.Chapters {
		w.addBody(w.newBody(i))
	}
}

func (w *World) newBody(index int) *Body {
	w.nextID++
	return w.factory.build(w.nextID, &w.Catalog.Chapters[index], index)
}

func (w *World) addBody(b *Body) {
	w.bodies = append(w.bodies, b)
	w.emit(Event{Kind: EventBodyCreated, Body: b, Position: b.Position})
}

func (w *World) addEffect(e Effect) {
	w.effects = append(w.effects, e)
	w.emit(Event{Kind: EventEffectSpawned, Effect: e})
}

func (w *World) addTween(t *Tween) *Tween {
	w.tweens = append(w.tweens, t)
	return t
}

func (w *World) after(d time.Duration, fn func()) {
	w.timers = append(w.timers, &timer{remaining: d, fn: fn})
}

// Bodies returns the live bodies in creation order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Body looks up a live body
func (w *World) Body(id BodyID) (*Body, bool) {
	if id == 0 {
		return nil, false
	}
	for _, b := range w.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// BodyForChapter finds the live body showing a chapter
func (w *World) BodyForChapter(chapterID string) (*Body, bool) {
	for _, b := range w.bodies {
		if b.Chapter.ID == chapterID {
			return b, true
		}
	}
	return nil, false
}

// Effects returns the live effects
func (w *World) Effects() []Effect {
	return w.effects
}

// Frame is the number of Update calls so far
func (w *World) Frame() uint64 { return w.frame }

// Elapsed is the accumulated world time
func (w *World) Elapsed() time.Duration { return w.elapsed }

// MotionEnabled reports whether orbits advance
func (w *World) MotionEnabled() bool { return w.motion }

// SetMotionEnabled pauses or resumes orbital motion. Spin is unaffected.
func (w *World) SetMotionEnabled(on bool) { w.motion = on }

// Update advances the world by one frame. Orbits, spin and particle effects
// move a fixed step per frame; tweens and timers consume dt.
func (w *World) Update(dt time.Duration) {
	if w.torn {
		return
	}
	w.frame++
	w.elapsed += dt

	w.runTimers(dt)
	w.stepTweens(dt)

	orbiting := w.motion && !w.State.Zoomed
	for _, b := range w.bodies {
		switch b.Phase {
		case PhaseOrbiting:
			b.Advance(orbiting)
		case PhaseFlyingIn:
			b.Spin += b.SpinSpeed
		case PhaseScattering:
			if b.scatterStep() {
				b.Phase = PhaseLost
			}
		}
	}
	if !w.Sun.Destroyed {
		w.Sun.Rotation += SunSpin
	}

	w.stepEffects()
	w.Sky.Update(w.elapsed, w.rng)

	w.checkRespawn()
	w.checkGameOver()
}

func (w *World) runTimers(dt time.Duration) {
	if len(w.timers) == 0 {
		return
	}
	due := w.timers
	w.timers = nil
	for _, t := range due {
		t.remaining -= dt
		if t.remaining <= 0 {
			t.fn()
			continue
		}
		w.timers = append(w.timers, t)
	}
}

func (w *World) stepTweens(dt time.Duration) {
	if len(w.tweens) == 0 {
		return
	}
	running := w.tweens
	w.tweens = nil
	for _, t := range running {
		if !t.Step(dt) {
			w.tweens = append(w.tweens, t)
		}
	}
	if w.cameraTween != nil && w.cameraTween.Done() {
		w.cameraTween = nil
	}
}

func (w *World) stepEffects() {
	live := w.effects[:0]
	for _, e := range w.effects {
		e.Step(w)
		if e.Done() {
			e.Release()
			w.emit(Event{Kind: EventEffectReleased, Effect: e})
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(w.effects); i++ {
		w.effects[i] = nil
	}
	w.effects = live
}

// ShowDetail zooms the camera onto a body and opens its detail card when the
// flight lands.
func (w *World) ShowDetail(id BodyID) error {
	if w.State.Zoomed || w.State.Transitioning || w.State.DetailOpen {
		return ErrTransitionInFlight
	}
	b, ok := w.Body(id)
	if !ok || b.Phase != PhaseOrbiting {
		return fmt.Errorf("show detail %d: %w", id, ErrUnknownBody)
	}

	w.clearHover()
	w.State.Zoomed = true
	w.State.Transitioning = true
	w.State.HeroVisible = false

	target := b.Position.Normalize().Mul(ZoomDistance)
	w.cameraTween = w.addTween(NewTween(w.Camera.Position, target, ZoomDuration, QuadraticOut,
		func(v mgl32.Vec3) {
			w.Camera.Position = v
			if b, ok := w.Body(id); ok {
				w.Camera.Target = b.Position
			}
		},
		func() {
			w.State.Transitioning = false
			w.State.DetailOpen = true
			w.State.Active = id
			if b, ok := w.Body(id); ok {
				w.emit(Event{Kind: EventDetailShown, Body: b, Position: b.Position})
			}
		},
	))
	w.emit(Event{Kind: EventTransitionStarted, Body: b, Position: b.Position})
	return nil
}

// HideDetail closes the card and returns the camera home in a single step.
// It also aborts a zoom still in flight. In the explode variant the visited
// body is destroyed on the way out.
func (w *World) HideDetail() {
	if !w.State.Zoomed && !w.State.DetailOpen && !w.State.Transitioning {
		return
	}
	active := w.State.Active
	if w.cameraTween != nil {
		w.cameraTween.Cancel()
		w.cameraTween = nil
	}

	w.State.Active = 0
	w.State.Zoomed = false
	w.State.Transitioning = false
	w.State.DetailOpen = false
	w.State.HeroVisible = true
	w.clearHover()

	b, _ := w.Body(active)
	w.emit(Event{Kind: EventDetailHidden, Body: b})

	if w.Params.Variant == VariantExplode && active != 0 {
		if err := w.DestroyBody(active); err != nil {
			log.Printf("hide detail: %v", err)
		}
	}
	w.Camera.ResetHome()
}

// DestroyBody removes a body and leaves an explosion in its place
func (w *World) DestroyBody(id BodyID) error {
	idx := -1
	for i, b := range w.bodies {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("destroy %d: %w", id, ErrUnknownBody)
	}

	b := w.bodies[idx]
	w.bodies = append(w.bodies[:idx], w.bodies[idx+1:]...)
	w.State.DestroyedIDs[b.Chapter.ID] = true
	if w.State.Hovered == id {
		w.clearHover()
	}
	if w.State.Active == id {
		w.State.Active = 0
	}

	w.emit(Event{Kind: EventBodyRemoved, Body: b, Position: b.Position})
	w.addEffect(NewExplosion(b.Position, b.Color, w.rng))
	b.Texture = nil
	return nil
}

// Reset tears everything down and rebuilds the galaxy from the catalog
func (w *World) Reset() {
	w.clear()
	w.State = newInteractionState()
	w.Camera.ResetHome()
	w.Sun = newSun()
	w.motion = w.Params.MotionEnabled
	w.populate()
	w.emit(Event{Kind: EventReset})
}

// Teardown releases every body and effect. The world stays empty and
// Update becomes a no-op.
func (w *World) Teardown() {
	w.torn = true
	w.clear()
	w.State = newInteractionState()
}

func (w *World) clear() {
	for _, t := range w.tweens {
		t.Cancel()
	}
	w.tweens = nil
	w.cameraTween = nil
	w.timers = nil
	w.respawn = nil

	for _, b := range w.bodies {
		w.emit(Event{Kind: EventBodyRemoved, Body: b, Position: b.Position})
		b.Texture = nil
	}
	w.bodies = nil

	for _, e := range w.effects {
		e.Release()
		w.emit(Event{Kind: EventEffectReleased, Effect: e})
	}
	w.effects = nil
}
