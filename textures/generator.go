// Package textures synthesizes the planet surface images. Every generator
// paints a fixed Size x Size canvas with gg fill primitives only, so none of
// them can fail.
package textures

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Size is the edge length of every generated texture in pixels
const Size = 512

// baseBoost brightens the chapter color so textures stay readable under lighting
const baseBoost = 1.2

// rgb is a base color in 0..255 space, kept as floats so patterns can scale it
type rgb struct {
	R, G, B float64
}

func (c rgb) scale(f float64) rgb {
	return rgb{clamp255(c.R * f), clamp255(c.G * f), clamp255(c.B * f)}
}

func (c rgb) add(dr, dg, db float64) rgb {
	return rgb{clamp255(c.R + dr), clamp255(c.G + dg), clamp255(c.B + db)}
}

func (c rgb) rgba(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R)),
		G: uint8(clamp255(c.G)),
		B: uint8(clamp255(c.B)),
		A: uint8(clamp255(alpha * 255)),
	}
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// generator paints one pattern onto a fresh context
type generator func(dc *gg.Context, base rgb, rng *rand.Rand)

var generators = map[Pattern]generator{
	PatternStatistical: statistical,
	PatternCrystalline: crystalline,
	PatternClouds:      clouds,
	PatternMarble:      marble,
	PatternSedimentary: sedimentary,
	PatternLightning:   lightning,
	PatternWaves:       waves,
	PatternVolcanic:    volcanic,
	PatternOrganic:     organic,
	PatternRainbow:     rainbow,
}

// Generate paints the texture for a pattern in the given base color.
// Unknown patterns fall back to the rainbow burst.
func Generate(p Pattern, base colorful.Color, rng *rand.Rand) *image.RGBA {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	gen, ok := generators[p]
	if !ok {
		gen = rainbow
	}

	r, g, b := base.Clamped().RGB255()
	boosted := rgb{float64(r), float64(g), float64(b)}.scale(baseBoost)

	dc := gg.NewContext(Size, Size)
	gen(dc, boosted, rng)

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}
