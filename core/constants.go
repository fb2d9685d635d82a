package core

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit layout
const (
	MinOrbitRadius = 6.0  // innermost chapter
	MaxOrbitRadius = 12.0 // outermost chapter, still inside the home view
	OrbitSpeedK    = 0.008
	OrbitDamping   = 0.25 // slows every orbit by 75%
	SpinBase       = 0.01
	SpinJitter     = 0.02
	MaxTilt        = 25 * math.Pi / 180
)

// Body visuals
const (
	BaseBodySize     = 0.8
	SizeJitter       = 0.1 // keeps glow shells of neighbouring orbits apart
	GlowScale        = 1.1
	GlowHoverOpacity = 0.3
	LabelOffset      = 1.6
	RingTiltJitter   = 0.35
)

// Camera
const (
	CameraFovY   = 75.0
	CameraNear   = 0.1
	CameraFar    = 2500.0
	ZoomDistance = 8.0
	ZoomDuration = 1500 * time.Millisecond
)

var (
	HomePosition = mgl32.Vec3{0, 8, 18}
	HomeTarget   = mgl32.Vec3{0, 0, 0}
)

// Destruction effect
const (
	ExplosionParticles = 200
	ExplosionFrames    = 120
	ExplosionGravity   = 0.002
	ExplosionMinSpeed  = 0.05
	ExplosionMaxSpeed  = 0.25
)

// Respawn sequence
const (
	RespawnStagger      = 250 * time.Millisecond
	RespawnDuration     = 2 * time.Second
	RespawnRadiusFactor = 2.5
	RespawnHeight       = 10.0
	TrailLength         = 24
	TrailFadeFrames     = 40
)

// Scatter effect
const (
	ScatterThreshold = 50.0
	ScatterMinSpeed  = 0.1
	ScatterMaxSpeed  = 0.3
	ScatterMaxDrift  = 0.05
)

// Sun and sky
const (
	SunRadius          = 2.0
	SunSpin            = 0.001
	StarCount          = 8000
	StarSpread         = 2000.0
	SparkleCount       = 50
	SparkleSpread      = 150.0
	ShootingStarPeriod = 2400 // frames between shooting stars
	ShootingStarTail   = 5.0
	ShootingStarSlow   = 0.05
)
