package rendering

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"galaxy/core"
	"galaxy/ui"
)

// PointStride is the float count of one point vertex: position, rgba, size
const PointStride = 8

// Point sizes in world units
const (
	StarSize    = 0.7
	StarOpacity = 0.8
	SparkleSize = 1.5
)

// labelRefDistance is the camera distance at which labels draw at full size
const labelRefDistance = 16.0

// LabelSprite is a chapter label positioned in window pixels
type LabelSprite struct {
	Body  core.BodyID
	Panel *ui.Panel
	X, Y  float64 // center
	Scale float64
	depth float32
}

// Rect is the label's screen rectangle after scaling
func (l LabelSprite) Rect() ui.Rect {
	b := l.Panel.Image.Bounds()
	w := float64(b.Dx()) * l.Scale
	h := float64(b.Dy()) * l.Scale
	return ui.Rect{X: l.X - w/2, Y: l.Y - h/2, W: w, H: h}
}

// Labels projects every visible body's label into the window, farthest first
func Labels(w *core.World, o *ui.Overlay, width, height int) []LabelSprite {
	var out []LabelSprite
	for _, b := range w.Bodies() {
		if b.Phase == core.PhaseLost {
			continue
		}
		x, y, ok := w.Camera.Project(b.LabelPosition, width, height)
		if !ok {
			continue
		}
		dist := b.LabelPosition.Sub(w.Camera.Position).Len()
		scale := math.Max(0.35, math.Min(1.5, labelRefDistance/float64(dist)))
		out = append(out, LabelSprite{Body: b.ID, Panel: o.Label(b), X: x, Y: y, Scale: scale, depth: dist})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

// VisibleBodies returns the bodies to draw, skipping ones lost to the void
func VisibleBodies(w *core.World) []*core.Body {
	bodies := w.Bodies()
	out := make([]*core.Body, 0, len(bodies))
	for _, b := range bodies {
		if b.Phase != core.PhaseLost {
			out = append(out, b)
		}
	}
	return out
}

func appendPoint(dst []float32, p, c mgl32.Vec3, alpha, size float32) []float32 {
	return append(dst, p[0], p[1], p[2], c[0], c[1], c[2], alpha, size)
}

// StarPoints packs the static starfield. The result only changes on Reset.
func StarPoints(sky *core.Sky, dst []float32) []float32 {
	dst = dst[:0]
	for _, s := range sky.Stars {
		dst = appendPoint(dst, s.Position, s.Color, StarOpacity, StarSize)
	}
	return dst
}

// SparklePoints packs the twinkling stars with their current opacity and scale
func SparklePoints(sky *core.Sky, dst []float32) []float32 {
	dst = dst[:0]
	for _, s := range sky.Sparkles {
		dst = appendPoint(dst, s.Position, s.Color, s.Opacity, SparkleSize*s.Scale)
	}
	return dst
}

// EffectPoints packs every live particle. Trails fade toward their tail.
func EffectPoints(effects []core.Effect, dst []float32) []float32 {
	dst = dst[:0]
	for _, e := range effects {
		ps := e.Particles()
		alpha := e.Opacity()
		size := e.PointSize()
		for i, p := range ps {
			a := alpha
			if e.Kind() == core.EffectTrail {
				a *= 1 - float32(i)/float32(len(ps))
			}
			dst = appendPoint(dst, p.Position, p.Color, a, size)
		}
	}
	return dst
}

// ShootingStarLines packs head and tail vertices for each streak
func ShootingStarLines(sky *core.Sky, dst []float32) []float32 {
	dst = dst[:0]
	white := mgl32.Vec3{1, 1, 1}
	for _, s := range sky.ShootingStars {
		dst = appendPoint(dst, s.Head, white, s.Opacity, 1)
		dst = appendPoint(dst, s.Tail(), white, 0, 1)
	}
	return dst
}
