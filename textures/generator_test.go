package textures

import (
	"math/rand"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func channelMeans(t *testing.T, p Pattern, base colorful.Color) (r, g, b float64) {
	t.Helper()
	img := Generate(p, base, rand.New(rand.NewSource(7)))
	if img == nil {
		t.Fatalf("%s: nil image", p)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != Size || h != Size {
		t.Fatalf("%s: got %dx%d, want %dx%d", p, w, h, Size, Size)
	}
	n := 0.0
	for i := 0; i < len(img.Pix); i += 4 {
		r += float64(img.Pix[i])
		g += float64(img.Pix[i+1])
		b += float64(img.Pix[i+2])
		n++
	}
	return r / n, g / n, b / n
}

func TestGenerateEveryPattern(t *testing.T) {
	base := mustHex("#577590")
	for _, p := range Patterns() {
		t.Run(p.String(), func(t *testing.T) {
			img := Generate(p, base, rand.New(rand.NewSource(1)))
			if img.Bounds().Dx() != Size || img.Bounds().Dy() != Size {
				t.Fatalf("unexpected bounds %v", img.Bounds())
			}

			// every pattern is opaque and not a flat fill
			first := img.RGBAAt(0, 0)
			varied := false
			for y := 0; y < Size; y += 7 {
				for x := 0; x < Size; x += 7 {
					c := img.RGBAAt(x, y)
					if c.A != 255 {
						t.Fatalf("pixel (%d,%d) not opaque: %v", x, y, c)
					}
					if c != first {
						varied = true
					}
				}
			}
			if !varied {
				t.Error("texture is a single flat color")
			}
		})
	}
}

func TestGenerateUnknownPatternFallsBack(t *testing.T) {
	img := Generate(Pattern(99), mustHex("#F9C74F"), rand.New(rand.NewSource(3)))
	if img == nil || img.Bounds().Dx() != Size {
		t.Fatal("expected a rainbow fallback texture")
	}
}

func TestGenerateNilRandSource(t *testing.T) {
	if img := Generate(PatternOrganic, mustHex("#F3722C"), nil); img == nil {
		t.Fatal("expected texture with nil rand source")
	}
}

func TestGenerateFollowsBaseColor(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		hex     string
	}{
		{"red statistical", PatternStatistical, "#F94144"},
		{"red organic", PatternOrganic, "#F94144"},
		{"red volcanic", PatternVolcanic, "#F94144"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _, b := channelMeans(t, tc.pattern, mustHex(tc.hex))
			if r <= b {
				t.Errorf("red base should dominate: mean R %.1f, mean B %.1f", r, b)
			}
		})
	}
}

func TestSedimentaryStaysWarm(t *testing.T) {
	// a blue base must still come out warm
	r, _, b := channelMeans(t, PatternSedimentary, mustHex("#577590"))
	if r <= b {
		t.Errorf("sedimentary should be warm: mean R %.1f, mean B %.1f", r, b)
	}
}

func TestParsePattern(t *testing.T) {
	for _, p := range Patterns() {
		got, err := ParsePattern(p.String())
		if err != nil {
			t.Fatalf("ParsePattern(%q): %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePattern(%q) = %v", p, got)
		}
	}
	if _, err := ParsePattern("plaid"); err == nil {
		t.Error("expected error for unknown pattern")
	}
}
