package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitalSpeed is Keplerian-like: inner orbits move faster
func OrbitalSpeed(radius float64) float64 {
	return OrbitSpeedK / math.Sqrt(radius) * OrbitDamping
}

// OrbitPoint is where the body sits at a given angle, with the orbital tilt applied
func (b *Body) OrbitPoint(angle float64) mgl32.Vec3 {
	x := math.Cos(angle) * b.OrbitalRadius
	zp := math.Sin(angle) * b.OrbitalRadius
	sin, cos := math.Sincos(b.OrbitalTilt)
	return mgl32.Vec3{float32(x), float32(zp * sin), float32(zp * cos)}
}

// Advance moves the body one frame along its orbit. Spin always continues;
// the orbital angle only moves while orbiting is true.
func (b *Body) Advance(orbiting bool) {
	b.Spin += b.SpinSpeed
	if b.Phase != PhaseOrbiting || !orbiting {
		return
	}
	b.OrbitalAngle = math.Mod(b.OrbitalAngle+b.AngularSpeed, 2*math.Pi)
	b.Position = b.OrbitPoint(b.OrbitalAngle)
	b.syncLabel()
}

// scatterStep drifts the body outward and reports whether it has left the scene
func (b *Body) scatterStep() bool {
	b.Spin += b.SpinSpeed
	b.Position = b.Position.Add(b.Velocity)
	b.Tumble = b.Tumble.Add(b.Drift)
	b.syncLabel()
	return b.Position.Len() > ScatterThreshold
}
