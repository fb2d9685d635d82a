package core

import (
	"fmt"
	"image"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"galaxy/textures"
)

// Variant selects what dismissing the detail card does
type Variant int

const (
	VariantClassic Variant = iota // camera reset only
	VariantExplode                // the visited planet explodes, galaxy respawns when empty
	VariantScatter                // the sun can be destroyed, scattering every planet
)

var variantNames = []string{"classic", "explode", "scatter"}

func (v Variant) String() string {
	if int(v) >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a settings name onto a Variant
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return VariantClassic, fmt.Errorf("unknown variant %q (want one of %s)", name, strings.Join(variantNames, ", "))
}

// TextureFunc paints a body's surface
type TextureFunc func(p textures.Pattern, base colorful.Color, rng *rand.Rand) *image.RGBA

// Params tunes a World
type Params struct {
	Variant       Variant
	MotionEnabled bool
	RingOrder     int   // chapter order that wears the rings, 0 for none
	TiltedOrders  []int // chapter orders whose orbital plane is tilted
	Seed          int64 // 0 picks a time based seed
	Textures      TextureFunc
}

// DefaultParams mirrors the settings file defaults
func DefaultParams() Params {
	return Params{
		Variant:       VariantClassic,
		MotionEnabled: true,
		RingOrder:     14,
		TiltedOrders:  []int{12, 15, 17},
		Textures:      textures.Generate,
	}
}

func (p Params) tilted(order int) bool {
	for _, o := range p.TiltedOrders {
		if o == order {
			return true
		}
	}
	return false
}
