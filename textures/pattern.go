package textures

import (
	"fmt"
	"strings"
)

// Pattern selects the procedural surface of a planet
type Pattern int

const (
	PatternRainbow Pattern = iota // default burst, used for anything unmapped
	PatternStatistical
	PatternCrystalline
	PatternClouds
	PatternMarble
	PatternSedimentary
	PatternLightning
	PatternWaves
	PatternVolcanic
	PatternOrganic
)

var patternNames = map[Pattern]string{
	PatternRainbow:     "rainbow",
	PatternStatistical: "statistical",
	PatternCrystalline: "crystalline",
	PatternClouds:      "clouds",
	PatternMarble:      "marble",
	PatternSedimentary: "sedimentary",
	PatternLightning:   "lightning",
	PatternWaves:       "waves",
	PatternVolcanic:    "volcanic",
	PatternOrganic:     "organic",
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// ParsePattern maps a pattern name back to its value
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}
	return PatternRainbow, fmt.Errorf("unknown pattern %q", name)
}

// Patterns lists every pattern in declaration order
func Patterns() []Pattern {
	out := make([]Pattern, 0, len(patternNames))
	for p := PatternRainbow; p <= PatternOrganic; p++ {
		out = append(out, p)
	}
	return out
}
