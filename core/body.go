package core

import (
	"image"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyID identifies a live body. Ids are never reused; zero means none.
type BodyID uint64

// Phase tracks what is currently driving a body's position
type Phase int

const (
	PhaseOrbiting   Phase = iota // advanced by the orbit model
	PhaseFlyingIn                // driven by a respawn tween
	PhaseScattering              // drifting away after the sun was destroyed
	PhaseLost                    // past the scatter threshold, hidden
)

func (p Phase) String() string {
	switch p {
	case PhaseOrbiting:
		return "orbiting"
	case PhaseFlyingIn:
		return "flying-in"
	case PhaseScattering:
		return "scattering"
	case PhaseLost:
		return "lost"
	}
	return "unknown"
}

// Ring is one flat band around a ringed planet, radii in world units
type Ring struct {
	Inner   float32
	Outer   float32
	Opacity float32
	TiltX   float32
	TiltY   float32
}

// Body is one chapter's planet
type Body struct {
	ID      BodyID
	Chapter *ChapterRecord
	Index   int // position in the catalog

	OrbitalRadius float64
	OrbitalAngle  float64
	OrbitalTilt   float64 // rotation of the orbital plane about the X axis
	AngularSpeed  float64
	SpinSpeed     float64
	Spin          float64

	Size        float32
	GlowSize    float32
	GlowOpacity float32
	Color       mgl32.Vec3
	Rings       []Ring
	Texture     *image.RGBA

	Position      mgl32.Vec3
	LabelPosition mgl32.Vec3
	Phase         Phase

	// scatter motion
	Velocity mgl32.Vec3
	Drift    mgl32.Vec3
	Tumble   mgl32.Vec3
}

// OrbitRadiusFor interpolates linearly between the inner and outer orbit by
// chapter order. A catalog with a single order puts everything on the inner orbit.
func OrbitRadiusFor(order, minOrder, maxOrder int) float64 {
	if maxOrder <= minOrder {
		return MinOrbitRadius
	}
	f := float64(order-minOrder) / float64(maxOrder-minOrder)
	return MinOrbitRadius + f*(MaxOrbitRadius-MinOrbitRadius)
}

// bodyFactory builds bodies from catalog entries
type bodyFactory struct {
	params   Params
	minOrder int
	maxOrder int
	count    int
	rng      *rand.Rand
}

func newBodyFactory(cat *Catalog, p Params, rng *rand.Rand) *bodyFactory {
	lo, hi := cat.OrderRange()
	return &bodyFactory{params: p, minOrder: lo, maxOrder: hi, count: len(cat.Chapters), rng: rng}
}

func (f *bodyFactory) build(id BodyID, rec *ChapterRecord, index int) *Body {
	rng := f.rng
	radius := OrbitRadiusFor(rec.Order, f.minOrder, f.maxOrder)
	size := float32(BaseBodySize * (1 - SizeJitter + rng.Float64()*2*SizeJitter))

	r, g, bl := rec.Color.Clamped().RGB255()
	b := &Body{
		ID:            id,
		Chapter:       rec,
		Index:         index,
		OrbitalRadius: radius,
		OrbitalAngle:  2 * math.Pi * float64(index) / float64(f.count),
		AngularSpeed:  OrbitalSpeed(radius),
		SpinSpeed:     (SpinBase + rng.Float64()*SpinJitter) * OrbitDamping,
		Size:          size,
		GlowSize:      size * GlowScale,
		Color:         mgl32.Vec3{float32(r) / 255, float32(g) / 255, float32(bl) / 255},
		Phase:         PhaseOrbiting,
	}
	if f.params.tilted(rec.Order) {
		b.OrbitalTilt = (rng.Float64()*2 - 1) * MaxTilt
	}
	if f.params.RingOrder != 0 && rec.Order == f.params.RingOrder {
		b.Rings = ringsFor(size, rng)
	}
	if f.params.Textures != nil {
		b.Texture = f.params.Textures(rec.Pattern, rec.Color, rng)
	}
	b.Position = b.OrbitPoint(b.OrbitalAngle)
	b.syncLabel()
	return b
}

func ringsFor(size float32, rng *rand.Rand) []Ring {
	bands := []struct {
		inner, outer [2]float32
		opacity      float32
	}{
		{[2]float32{1.35, 1.45}, [2]float32{1.5, 1.6}, 0.6},
		{[2]float32{1.7, 1.75}, [2]float32{1.8, 1.9}, 0.4},
		{[2]float32{2.0, 2.05}, [2]float32{2.1, 2.2}, 0.25},
	}
	rings := make([]Ring, len(bands))
	for i, band := range bands {
		rings[i] = Ring{
			Inner:   size * lerp32(band.inner[0], band.inner[1], rng.Float32()),
			Outer:   size * lerp32(band.outer[0], band.outer[1], rng.Float32()),
			Opacity: band.opacity,
			TiltX:   (rng.Float32()*2 - 1) * RingTiltJitter,
			TiltY:   (rng.Float32()*2 - 1) * RingTiltJitter,
		}
	}
	return rings
}

func (b *Body) syncLabel() {
	b.LabelPosition = b.Position.Add(mgl32.Vec3{0, LabelOffset, 0})
}

// Hit reports the distance along the ray to the body's surface
func (b *Body) Hit(r Ray) (float32, bool) {
	return r.IntersectSphere(b.Position, b.Size)
}

// Model is the body's world transform: translation, tumble, then spin about Y
func (b *Body) Model() mgl32.Mat4 {
	m := mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z())
	if b.Tumble != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.HomogRotate3DX(b.Tumble.X())).
			Mul4(mgl32.HomogRotate3DZ(b.Tumble.Z()))
	}
	return m.Mul4(mgl32.HomogRotate3DY(float32(b.Spin) + b.Tumble.Y())).
		Mul4(mgl32.Scale3D(b.Size, b.Size, b.Size))
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}
