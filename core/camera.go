package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half line in world space. Dir is normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// IntersectSphere returns the distance to the closest non-negative intersection
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	a := r.Dir.Dot(r.Dir)
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(disc)))
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// At returns the point at distance t along the ray
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Camera is a perspective camera that always looks at Target
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // degrees
	Near     float32
	Far      float32
}

// NewCamera returns a camera at the home view
func NewCamera() *Camera {
	c := &Camera{
		Up:   mgl32.Vec3{0, 1, 0},
		FovY: CameraFovY,
		Near: CameraNear,
		Far:  CameraFar,
	}
	c.ResetHome()
	return c
}

// ResetHome snaps the camera back to its fixed home pose
func (c *Camera) ResetHome() {
	c.Position = HomePosition
	c.Target = HomeTarget
}

// AtHome reports whether the camera is in its home pose
func (c *Camera) AtHome() bool {
	return c.Position.ApproxEqualThreshold(HomePosition, 1e-4) &&
		c.Target.ApproxEqualThreshold(HomeTarget, 1e-4)
}

// View returns the view matrix
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ScreenRay unprojects a pixel position into a world space ray
func (c *Camera) ScreenRay(x, y float64, width, height int) Ray {
	if width <= 0 || height <= 0 {
		return Ray{Origin: c.Position, Dir: c.Target.Sub(c.Position).Normalize()}
	}

	// pixel to NDC, Y flipped
	nx := float32(2*x/float64(width) - 1)
	ny := float32(1 - 2*y/float64(height))

	invViewProj := c.Projection(float32(width) / float32(height)).Mul4(c.View()).Inv()
	near := invViewProj.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	far := invViewProj.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	near = near.Mul(1 / near.W())
	far = far.Mul(1 / far.W())

	return Ray{Origin: near.Vec3(), Dir: far.Vec3().Sub(near.Vec3()).Normalize()}
}

// Project maps a world point to pixel coordinates. ok is false for points
// behind the camera.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y float64, ok bool) {
	clip := c.Projection(float32(width) / float32(height)).Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (float64(ndc.X()) + 1) / 2 * float64(width)
	y = (1 - float64(ndc.Y())) / 2 * float64(height)
	return x, y, true
}
