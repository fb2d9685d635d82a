package textures

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

const canvas = float64(Size)

type stop struct {
	offset float64
	color  color.Color
}

func fillRect(dc *gg.Context, x, y, w, h float64, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
}

func fillCircle(dc *gg.Context, x, y, r float64, c color.Color) {
	dc.SetColor(c)
	dc.DrawCircle(x, y, r)
	dc.Fill()
}

// radialDisc fills a circle with a gradient running from its center outwards
func radialDisc(dc *gg.Context, x, y, r float64, stops ...stop) {
	grad := gg.NewRadialGradient(x, y, 0, x, y, r)
	for _, s := range stops {
		grad.AddColorStop(s.offset, s.color)
	}
	dc.SetFillStyle(grad)
	dc.DrawCircle(x, y, r)
	dc.Fill()
}

// radialWash covers the whole canvas with a gradient centered at (x, y)
func radialWash(dc *gg.Context, x, y, r float64, stops ...stop) {
	grad := gg.NewRadialGradient(x, y, 0, x, y, r)
	for _, s := range stops {
		grad.AddColorStop(s.offset, s.color)
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, canvas, canvas)
	dc.Fill()
}

// randomWalk strokes a jittered polyline starting at a random point
func randomWalk(dc *gg.Context, rng *rand.Rand, steps int, jitter, width float64, c color.Color) {
	x, y := rng.Float64()*canvas, rng.Float64()*canvas
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.MoveTo(x, y)
	for i := 0; i < steps; i++ {
		x += (rng.Float64() - 0.5) * jitter
		y += (rng.Float64() - 0.5) * jitter
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

// blockFill composites a solid block straight into the backing image. The
// per-cell patterns paint tens of thousands of blocks, which is too slow
// through the path rasterizer.
func blockFill(img *image.RGBA, x, y, w, h int, c color.NRGBA) {
	a := uint32(c.A)
	if a == 0 {
		return
	}
	inv := 255 - a
	r := image.Rect(x, y, x+w, y+h).Intersect(img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		off := img.PixOffset(r.Min.X, py)
		for px := r.Min.X; px < r.Max.X; px++ {
			p := img.Pix[off : off+4 : off+4]
			p[0] = uint8((uint32(c.R)*a + uint32(p[0])*inv) / 255)
			p[1] = uint8((uint32(c.G)*a + uint32(p[1])*inv) / 255)
			p[2] = uint8((uint32(c.B)*a + uint32(p[2])*inv) / 255)
			p[3] = uint8(a + uint32(p[3])*inv/255)
			off += 4
		}
	}
}

func backing(dc *gg.Context) *image.RGBA {
	img, _ := dc.Image().(*image.RGBA)
	return img
}

// statistical: a grid of sampled cells with the odd data point
func statistical(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.scale(1.5).rgba(1))

	const cell = 32
	for x := 0.0; x < canvas; x += cell {
		for y := 0.0; y < canvas; y += cell {
			shade := math.Floor((rng.Float64()*0.5 + 0.5) * 50)
			c := rgb{
				math.Max(100, base.R+shade),
				math.Max(100, base.G+shade),
				math.Max(100, base.B+shade),
			}
			fillRect(dc, x, y, cell, cell, c.rgba(0.9))

			if rng.Float64() > 0.7 {
				fillCircle(dc, x+cell/2, y+cell/2, 2, color.NRGBA{255, 255, 255, 204})
			}
		}
	}
}

// crystalline: overlapping angular facets
func crystalline(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.rgba(1))

	for i := 0; i < 50; i++ {
		cx, cy := rng.Float64()*canvas, rng.Float64()*canvas
		size := rng.Float64()*40 + 20
		sides := rng.Intn(4) + 3

		dc.NewSubPath()
		for j := 0; j < sides; j++ {
			angle := float64(j) / float64(sides) * 2 * math.Pi
			dc.LineTo(cx+math.Cos(angle)*size, cy+math.Sin(angle)*size)
		}
		dc.ClosePath()

		dc.SetColor(base.scale(rng.Float64()*0.5 + 0.5).rgba(0.7))
		dc.Fill()
	}
}

// clouds: three layers of soft sin/cos banding
func clouds(dc *gg.Context, base rgb, _ *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.scale(1.4).rgba(1))

	img := backing(dc)
	tint := base.scale(1.6)
	for layer := 0; layer < 3; layer++ {
		l := float64(layer)
		for x := 0; x < Size; x += 4 {
			for y := 0; y < Size; y += 4 {
				noise := math.Sin(float64(x)*0.01+l)*math.Cos(float64(y)*0.01+l)*0.5 + 0.5
				swirl := math.Sin(float64(x+y)*0.02+l*2)*0.3 + 0.7
				opacity := noise*swirl*0.6 + 0.3
				blockFill(img, x, y, 4, 4, tint.rgba(opacity))
			}
		}
	}
}

// marble: random-walk veins with faint white highlights
func marble(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.scale(1.3).rgba(1))

	vein := base.scale(1.2).rgba(0.9)
	for i := 0; i < 20; i++ {
		randomWalk(dc, rng, 20, 30, rng.Float64()*3+1, vein)
	}
	highlight := color.NRGBA{255, 255, 255, 77}
	for i := 0; i < 10; i++ {
		randomWalk(dc, rng, 15, 25, rng.Float64()*2+0.5, highlight)
	}
}

// sedimentary: warm horizontal strata with golden edges
func sedimentary(dc *gg.Context, base rgb, rng *rand.Rand) {
	warm := rgb{
		clamp255(math.Max(base.R*2.5, 180)),
		clamp255(math.Max(base.G*2.2, 140)),
		clamp255(math.Max(base.B*1.5, 80)),
	}
	fillRect(dc, 0, 0, canvas, canvas, warm.rgba(1))

	const layers = 12
	img := backing(dc)
	for i := 0; i < layers; i++ {
		y := float64(i) / layers * canvas
		height := canvas/layers + rng.Float64()*15 - 7
		layer := warm.scale(1.5+rng.Float64()).add(30, 20, 0)
		fillRect(dc, 0, y, canvas, height, layer.rgba(1))

		highlight := layer.add(50, 40, 10).rgba(0.9)
		for x := 0; x < Size; x += 6 {
			if rng.Float64() > 0.4 {
				blockFill(img, x, int(y), 6, int(height), highlight)
			}
		}

		fillRect(dc, 0, y, canvas, 3, color.NRGBA{255, 220, 100, 179})
		fillRect(dc, 0, y+1, canvas, 1, color.NRGBA{255, 255, 255, 128})
	}

	radialWash(dc, canvas/2, canvas/2, 400,
		stop{0, color.NRGBA{255, 200, 100, 77}},
		stop{1, color.NRGBA{255, 150, 50, 26}},
	)
}

// lightning: an electric storm of recursive branches and sparkles
func lightning(dc *gg.Context, base rgb, rng *rand.Rand) {
	electric := rgb{
		clamp255(math.Max(base.R*1.2, 60)),
		clamp255(math.Max(base.G*2.5, 150)),
		clamp255(math.Max(base.B*3.0, 220)),
	}
	fillRect(dc, 0, 0, canvas, canvas, electric.rgba(1))

	for i := 0; i < 5; i++ {
		radialWash(dc, rng.Float64()*canvas, rng.Float64()*canvas, 200,
			stop{0, color.NRGBA{100, 200, 255, 204}},
			stop{0.5, electric.rgba(0.6)},
			stop{1, electric.rgba(0.2)},
		)
	}

	for i := 0; i < 18; i++ {
		branch(dc, rng, rng.Float64()*canvas, rng.Float64()*canvas, 0, rng.Float64()*2*math.Pi, 120, electric)
	}

	for i := 0; i < 50; i++ {
		x, y := rng.Float64()*canvas, rng.Float64()*canvas
		size := rng.Float64()*4 + 2
		fillCircle(dc, x, y, size, color.NRGBA{255, 255, 255, 230})
		fillCircle(dc, x, y, size*2, color.NRGBA{150, 220, 255, 179})
	}
}

// branch strokes one lightning segment in three layers and recurses
func branch(dc *gg.Context, rng *rand.Rand, x, y float64, depth int, angle, length float64, c rgb) {
	if depth > 6 || length < 8 {
		return
	}
	endX := x + math.Cos(angle)*length
	endY := y + math.Sin(angle)*length
	d := float64(depth)

	layers := []struct {
		width float64
		color color.NRGBA
	}{
		{math.Max(4, 10-d), color.NRGBA{100, 200, 255, uint8(clamp255((0.6 - d*0.08) * 255))}},
		{math.Max(2, 6-d), c.add(100, 180, 200).rgba(0.8 - d*0.08)},
		{math.Max(1, 3-d), color.NRGBA{255, 255, 255, uint8(clamp255((0.9 - d*0.08) * 255))}},
	}
	dc.SetLineCap(gg.LineCapRound)
	for _, l := range layers {
		dc.SetColor(l.color)
		dc.SetLineWidth(l.width)
		dc.DrawLine(x, y, endX, endY)
		dc.Stroke()
	}

	if rng.Float64() > 0.3 {
		branch(dc, rng, endX, endY, depth+1, angle+rng.Float64()*1.2-0.6, length*0.75, c)
	}
	if rng.Float64() > 0.5 {
		branch(dc, rng, endX, endY, depth+1, angle-rng.Float64()*1.2+0.6, length*0.65, c)
	}
	if rng.Float64() > 0.8 {
		branch(dc, rng, endX, endY, depth+1, angle+rng.Float64()*math.Pi-math.Pi/2, length*0.5, c)
	}
}

// waves: three interfering standing waves with bright crests
func waves(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.scale(1.7).rgba(1))

	img := backing(dc)
	for x := 0; x < Size; x += 2 {
		for y := 0; y < Size; y += 2 {
			fx, fy := float64(x), float64(y)
			w1 := math.Sin(fx*0.02) * math.Sin(fy*0.02)
			w2 := math.Sin((fx+100)*0.015) * math.Sin((fy+100)*0.015)
			w3 := math.Sin((fx+200)*0.018) * math.Sin((fy+200)*0.018)
			interference := (w1+w2+w3)/3*0.5 + 0.5
			blockFill(img, x, y, 2, 2, base.scale(1.0+interference*1.2).rgba(1))
		}
	}

	for i := 0; i < 8; i++ {
		radialDisc(dc, rng.Float64()*canvas, rng.Float64()*canvas, rng.Float64()*80+40,
			stop{0, color.NRGBA{255, 255, 255, 153}},
			stop{0.5, base.scale(2).rgba(0.4)},
			stop{1, base.rgba(0.1)},
		)
	}
}

// volcanic: glowing lava pools split by dark cracks
func volcanic(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.rgba(1))

	for i := 0; i < 30; i++ {
		radialDisc(dc, rng.Float64()*canvas, rng.Float64()*canvas, rng.Float64()*40+20,
			stop{0, base.add(100, 50, 0).rgba(0.9)},
			stop{1, base.scale(0.3).rgba(0.3)},
		)
	}

	crack := base.scale(0.2).rgba(0.8)
	for i := 0; i < 15; i++ {
		randomWalk(dc, rng, 10, 40, rng.Float64()*2+1, crack)
	}
}

// organic: a field of soft cells
func organic(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.rgba(1))

	for i := 0; i < 100; i++ {
		radialDisc(dc, rng.Float64()*canvas, rng.Float64()*canvas, rng.Float64()*25+10,
			stop{0, base.scale(1.3).rgba(0.6)},
			stop{0.7, base.rgba(0.4)},
			stop{1, base.scale(0.7).rgba(0.2)},
		)
	}
}

// rainbow: hue wedges bursting from the center over a noisy base
func rainbow(dc *gg.Context, base rgb, rng *rand.Rand) {
	fillRect(dc, 0, 0, canvas, canvas, base.rgba(1))

	img := backing(dc)
	for x := 0; x < Size; x += 4 {
		for y := 0; y < Size; y += 4 {
			blockFill(img, x, y, 4, 4, base.scale(rng.Float64()*0.3+0.7).rgba(1))
		}
	}

	const wedges = 36
	cx, cy := canvas/2, canvas/2
	for i := 0; i < wedges; i++ {
		a0 := float64(i) / wedges * 2 * math.Pi
		a1 := float64(i+1) / wedges * 2 * math.Pi
		hue := float64(i) / wedges * 360
		r, g, b := colorful.Hsv(hue, 0.8, 1).Clamped().RGB255()

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, canvas*0.75, a0, a1)
		dc.ClosePath()
		dc.SetColor(color.NRGBA{r, g, b, 90})
		dc.Fill()
	}

	radialWash(dc, cx, cy, canvas/2,
		stop{0, color.NRGBA{255, 255, 255, 180}},
		stop{0.4, color.NRGBA{255, 255, 255, 40}},
		stop{1, color.NRGBA{0, 0, 0, 0}},
	)
}
