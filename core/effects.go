package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// EffectKind names a transient particle effect
type EffectKind int

const (
	EffectExplosion EffectKind = iota
	EffectTrail
)

func (k EffectKind) String() string {
	if k == EffectTrail {
		return "trail"
	}
	return "explosion"
}

// Particle is one rendered point of an effect
type Particle struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Effect is a frame driven particle system. The world steps every live effect
// once per tick and releases it as soon as Done reports true.
type Effect interface {
	Kind() EffectKind
	Step(w *World)
	Done() bool
	Particles() []Particle
	Opacity() float32
	PointSize() float32
	Release()
}

// hot colors an explosion mixes with the body color
var explosionPalette = []colorful.Color{
	{R: 1, G: 0.27, B: 0},    // red orange
	{R: 1, G: 0.65, B: 0},    // orange
	{R: 1, G: 1, B: 0},       // yellow
	{R: 1, G: 1, B: 1},       // white hot
	{R: 1, G: 0.39, B: 0.28}, // tomato
}

// Explosion is a burst of particles with gravity that fades out linearly
type Explosion struct {
	particles  []Particle
	velocities []mgl32.Vec3
	frame      int
	frames     int
}

// NewExplosion spawns ExplosionParticles particles at origin tinted toward base
func NewExplosion(origin mgl32.Vec3, base mgl32.Vec3, rng *rand.Rand) *Explosion {
	e := &Explosion{
		particles:  make([]Particle, ExplosionParticles),
		velocities: make([]mgl32.Vec3, ExplosionParticles),
		frames:     ExplosionFrames,
	}
	baseColor := colorful.Color{R: float64(base.X()), G: float64(base.Y()), B: float64(base.Z())}
	for i := range e.particles {
		// uniform direction on the sphere
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		speed := ExplosionMinSpeed + rng.Float64()*(ExplosionMaxSpeed-ExplosionMinSpeed)
		e.velocities[i] = mgl32.Vec3{
			float32(math.Sin(phi) * math.Cos(theta) * speed),
			float32(math.Sin(phi) * math.Sin(theta) * speed),
			float32(math.Cos(phi) * speed),
		}

		hot := explosionPalette[rng.Intn(len(explosionPalette))]
		c := hot.BlendRgb(baseColor, 0.3+rng.Float64()*0.5).Clamped()
		e.particles[i] = Particle{Position: origin, Color: mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}}
	}
	return e
}

func (e *Explosion) Kind() EffectKind { return EffectExplosion }

func (e *Explosion) Step(*World) {
	if e.Done() {
		return
	}
	e.frame++
	for i := range e.particles {
		e.velocities[i][1] -= ExplosionGravity
		e.particles[i].Position = e.particles[i].Position.Add(e.velocities[i])
	}
}

func (e *Explosion) Done() bool { return e.frame >= e.frames }

func (e *Explosion) Particles() []Particle { return e.particles }

// Opacity falls linearly to zero over the frame budget
func (e *Explosion) Opacity() float32 {
	if e.frames == 0 {
		return 0
	}
	return float32(math.Max(0, 1-float64(e.frame)/float64(e.frames)))
}

func (e *Explosion) PointSize() float32 { return 0.3 }

func (e *Explosion) Release() {
	e.particles = nil
	e.velocities = nil
	e.frame = e.frames
}

// Trail is a fixed length ribbon of points that follows a flying body and
// fades out once the body has arrived or is gone.
type Trail struct {
	body    BodyID
	points  []Particle
	fading  bool
	fade    int
	opacity float32
}

// NewTrail seeds every trail point at start
func NewTrail(body BodyID, start mgl32.Vec3, color mgl32.Vec3) *Trail {
	t := &Trail{body: body, points: make([]Particle, TrailLength), opacity: 0.8}
	for i := range t.points {
		t.points[i] = Particle{Position: start, Color: color}
	}
	return t
}

func (t *Trail) Kind() EffectKind { return EffectTrail }

func (t *Trail) Step(w *World) {
	if t.fading {
		t.fade++
		t.opacity = 0.8 * float32(math.Max(0, 1-float64(t.fade)/TrailFadeFrames))
		return
	}
	b, ok := w.Body(t.body)
	if !ok || b.Phase != PhaseFlyingIn {
		t.fading = true
		return
	}
	copy(t.points[1:], t.points[:len(t.points)-1])
	t.points[0].Position = b.Position
}

func (t *Trail) Done() bool { return t.fading && t.fade >= TrailFadeFrames }

func (t *Trail) Particles() []Particle { return t.points }

func (t *Trail) Opacity() float32 { return t.opacity }

func (t *Trail) PointSize() float32 { return 0.15 }

func (t *Trail) Release() {
	t.points = nil
	t.fading = true
	t.fade = TrailFadeFrames
}
