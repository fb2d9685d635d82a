package core

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Star is one static background point
type Star struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Sparkle is a brighter star whose opacity and scale pulse over time
type Sparkle struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	BaseOpacity float32
	Speed       float64
	Offset      float64
	Opacity     float32
	Scale       float32
}

// ShootingStar streaks across the sky and fades over its lifetime
type ShootingStar struct {
	Head    mgl32.Vec3
	Dir     mgl32.Vec3
	Speed   float32
	Life    int
	MaxLife int
	Opacity float32
}

// Tail is the trailing end of the streak
func (s *ShootingStar) Tail() mgl32.Vec3 {
	return s.Head.Sub(s.Dir.Mul(ShootingStarTail))
}

// Sun sits at the origin and slowly turns
type Sun struct {
	Radius    float32
	Rotation  float32
	Color     mgl32.Vec3
	Destroyed bool
	Glows     []Glow
}

// Glow is an additive halo shell around the sun
type Glow struct {
	Radius  float32
	Opacity float32
}

func newSun() *Sun {
	return &Sun{
		Radius: SunRadius,
		Color:  mgl32.Vec3{1, 0.87, 0.35},
		Glows: []Glow{
			{Radius: 2.5, Opacity: 0.3},
			{Radius: 3.2, Opacity: 0.1},
		},
	}
}

// Sky holds the decorative backdrop: static stars, twinkling sparkles and
// the occasional shooting star.
type Sky struct {
	Stars         []Star
	Sparkles      []Sparkle
	ShootingStars []*ShootingStar

	frames int
}

var starTints = []mgl32.Vec3{
	{1, 1, 1},      // white
	{0.8, 0.9, 1},  // blue white
	{1, 0.95, 0.8}, // yellow white
}

// starTint picks white 70%, blue white 20%, yellow white 10% of the time
func starTint(rng *rand.Rand) mgl32.Vec3 {
	switch r := rng.Float64(); {
	case r < 0.7:
		return starTints[0]
	case r < 0.9:
		return starTints[1]
	}
	return starTints[2]
}

// NewSky scatters the star field
func NewSky(rng *rand.Rand) *Sky {
	s := &Sky{
		Stars:    make([]Star, StarCount),
		Sparkles: make([]Sparkle, SparkleCount),
	}
	for i := range s.Stars {
		s.Stars[i] = Star{
			Position: randomIn(rng, StarSpread),
			Color:    starTint(rng),
		}
	}
	for i := range s.Sparkles {
		base := float32(0.5 + rng.Float64()*0.5)
		s.Sparkles[i] = Sparkle{
			Position:    randomIn(rng, SparkleSpread),
			Color:       starTint(rng),
			BaseOpacity: base,
			Speed:       0.5 + rng.Float64()*2,
			Offset:      rng.Float64() * 2 * math.Pi,
			Opacity:     base,
			Scale:       1,
		}
	}
	return s
}

func randomIn(rng *rand.Rand, spread float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((rng.Float64() - 0.5) * spread),
		float32((rng.Float64() - 0.5) * spread),
		float32((rng.Float64() - 0.5) * spread),
	}
}

// Update advances one frame. elapsed is total world time, used for twinkling.
func (s *Sky) Update(elapsed time.Duration, rng *rand.Rand) {
	ms := float64(elapsed.Milliseconds())
	for i := range s.Sparkles {
		sp := &s.Sparkles[i]
		phase := ms*sp.Speed*0.001 + sp.Offset
		sp.Opacity = sp.BaseOpacity * float32(0.5+0.5*math.Sin(phase))
		sp.Scale = float32(1 + 0.3*math.Sin(phase*1.5))
	}

	s.frames++
	if s.frames%ShootingStarPeriod == 0 {
		s.ShootingStars = append(s.ShootingStars, newShootingStar(rng))
	}

	live := s.ShootingStars[:0]
	for _, st := range s.ShootingStars {
		st.Life++
		st.Head = st.Head.Add(st.Dir.Mul(st.Speed))
		st.Opacity = float32(math.Max(0, 1-float64(st.Life)/float64(st.MaxLife)))
		if st.Life < st.MaxLife {
			live = append(live, st)
		}
	}
	for i := len(live); i < len(s.ShootingStars); i++ {
		s.ShootingStars[i] = nil
	}
	s.ShootingStars = live
}

func newShootingStar(rng *rand.Rand) *ShootingStar {
	start := mgl32.Vec3{
		float32((rng.Float64() - 0.5) * 200),
		float32(50 + rng.Float64()*50),
		float32((rng.Float64() - 0.5) * 200),
	}
	dir := mgl32.Vec3{
		float32(rng.Float64() - 0.5),
		float32(-0.3 - rng.Float64()*0.3),
		float32(rng.Float64() - 0.5),
	}.Normalize()
	return &ShootingStar{
		Head:    start,
		Dir:     dir,
		Speed:   float32(2+rng.Float64()*3) * ShootingStarSlow * 10,
		MaxLife: 60 + rng.Intn(40),
		Opacity: 1,
	}
}
