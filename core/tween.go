package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Easing maps linear progress in [0,1] onto eased progress
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func QuadraticOut(t float64) float64 { return t * (2 - t) }

func CubicOut(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// Tween interpolates a Vec3 from From to To over Duration of wall time.
// OnUpdate sees every intermediate value; OnComplete runs once, after the
// final OnUpdate, unless the tween was cancelled.
type Tween struct {
	From       mgl32.Vec3
	To         mgl32.Vec3
	Duration   time.Duration
	Ease       Easing
	OnUpdate   func(v mgl32.Vec3)
	OnComplete func()

	elapsed   time.Duration
	finished  bool
	cancelled bool
}

// NewTween builds a tween; a nil easing means linear
func NewTween(from, to mgl32.Vec3, d time.Duration, ease Easing, onUpdate func(mgl32.Vec3), onComplete func()) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{From: from, To: to, Duration: d, Ease: ease, OnUpdate: onUpdate, OnComplete: onComplete}
}

// Progress is the linear progress in [0,1]
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return math.Min(1, float64(t.elapsed)/float64(t.Duration))
}

// Value is the eased value at the current progress
func (t *Tween) Value() mgl32.Vec3 {
	k := float32(t.Ease(t.Progress()))
	return t.From.Add(t.To.Sub(t.From).Mul(k))
}

// Step advances the tween and reports whether it is done
func (t *Tween) Step(dt time.Duration) bool {
	if t.finished || t.cancelled {
		return true
	}
	t.elapsed += dt
	if t.OnUpdate != nil {
		t.OnUpdate(t.Value())
	}
	if t.elapsed >= t.Duration {
		t.finished = true
		if t.OnComplete != nil {
			t.OnComplete()
		}
	}
	return t.finished
}

// Cancel stops the tween without running OnComplete
func (t *Tween) Cancel() {
	t.cancelled = true
}

// Done reports whether the tween finished or was cancelled
func (t *Tween) Done() bool {
	return t.finished || t.cancelled
}

// timer fires fn once after delay of accumulated world time
type timer struct {
	remaining time.Duration
	fn        func()
}
