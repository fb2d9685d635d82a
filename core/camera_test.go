package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayIntersectSphere(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		center mgl32.Vec3
		radius float32
		wantT  float32
		wantOK bool
	}{
		{
			name:   "head on",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, 10}, Dir: mgl32.Vec3{0, 0, -1}},
			radius: 1,
			wantT:  9,
			wantOK: true,
		},
		{
			name:   "miss",
			ray:    Ray{Origin: mgl32.Vec3{0, 5, 10}, Dir: mgl32.Vec3{0, 0, -1}},
			radius: 1,
		},
		{
			name:   "behind origin",
			ray:    Ray{Origin: mgl32.Vec3{0, 0, 10}, Dir: mgl32.Vec3{0, 0, 1}},
			radius: 1,
		},
		{
			name:   "origin inside",
			ray:    Ray{Origin: mgl32.Vec3{}, Dir: mgl32.Vec3{1, 0, 0}},
			radius: 2,
			wantT:  2,
			wantOK: true,
		},
		{
			name:   "offset center",
			ray:    Ray{Origin: mgl32.Vec3{6, 0, 10}, Dir: mgl32.Vec3{0, 0, -1}},
			center: mgl32.Vec3{6, 0, 0},
			radius: 0.5,
			wantT:  9.5,
			wantOK: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.ray.IntersectSphere(tc.center, tc.radius)
			if ok != tc.wantOK {
				t.Fatalf("hit = %v, want %v", ok, tc.wantOK)
			}
			if ok && math.Abs(float64(got-tc.wantT)) > 1e-4 {
				t.Errorf("t = %v, want %v", got, tc.wantT)
			}
		})
	}
}

func TestCameraHome(t *testing.T) {
	c := NewCamera()
	if !c.AtHome() {
		t.Fatalf("new camera not at home: %v", c.Position)
	}
	c.Position = mgl32.Vec3{1, 2, 3}
	if c.AtHome() {
		t.Fatal("moved camera still reports home")
	}
	c.ResetHome()
	if c.Position != HomePosition || c.Target != HomeTarget {
		t.Errorf("reset went to %v looking at %v", c.Position, c.Target)
	}
}

func TestScreenRayCenterLooksAtTarget(t *testing.T) {
	c := NewCamera()
	r := c.ScreenRay(640, 360, 1280, 720)
	want := HomeTarget.Sub(HomePosition).Normalize()
	if !r.Dir.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("center ray dir = %v, want %v", r.Dir, want)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	c := NewCamera()
	points := []mgl32.Vec3{{6, 0, 0}, {-4, 1, 5}, {0, -2, 9}}
	for _, p := range points {
		x, y, ok := c.Project(p, 1280, 720)
		if !ok {
			t.Fatalf("%v projected behind camera", p)
		}
		r := c.ScreenRay(x, y, 1280, 720)
		if _, hit := r.IntersectSphere(p, 0.05); !hit {
			t.Errorf("ray through projected %v (%.1f,%.1f) misses it", p, x, y)
		}
	}
}

func TestScreenRayZeroViewport(t *testing.T) {
	c := NewCamera()
	r := c.ScreenRay(10, 10, 0, 0)
	if r.Origin != c.Position {
		t.Errorf("degenerate viewport ray should start at the camera, got %v", r.Origin)
	}
}
