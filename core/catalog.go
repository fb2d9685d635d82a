package core

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"galaxy/textures"
)

// mustHex parses a catalog color literal
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ErrEmptyCatalog is returned when no chapter data is available at startup
var ErrEmptyCatalog = errors.New("no chapter data loaded")

// ChapterRecord is one immutable entry of the content catalog
type ChapterRecord struct {
	ID      string
	Order   int // orbital radius and texture choice derive from this
	Title   string
	Summary string
	Actions []string
	Color   colorful.Color
	Pattern textures.Pattern
}

// Label is the floating text shown next to the planet
func (c *ChapterRecord) Label() string {
	return fmt.Sprintf("Ch %d: %s", c.Order, c.Title)
}

// Hero is the banner content shown over the galaxy view
type Hero struct {
	Title        string
	Subtitle     string
	CallToAction string
	Description  string
}

// Catalog is the static, ordered content driving body creation
type Catalog struct {
	Hero     Hero
	Chapters []ChapterRecord
}

// Validate checks the catalog can drive a galaxy
func (c *Catalog) Validate() error {
	if c == nil || len(c.Chapters) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c.Chapters))
	for i, ch := range c.Chapters {
		if ch.ID == "" {
			return fmt.Errorf("chapter %d: empty id", i)
		}
		if seen[ch.ID] {
			return fmt.Errorf("chapter %d: duplicate id %q", i, ch.ID)
		}
		seen[ch.ID] = true
	}
	return nil
}

// OrderRange returns the smallest and largest chapter order
func (c *Catalog) OrderRange() (int, int) {
	if len(c.Chapters) == 0 {
		return 0, 0
	}
	lo, hi := c.Chapters[0].Order, c.Chapters[0].Order
	for _, ch := range c.Chapters[1:] {
		if ch.Order < lo {
			lo = ch.Order
		}
		if ch.Order > hi {
			hi = ch.Order
		}
	}
	return lo, hi
}

// Chapter looks up a record by id
func (c *Catalog) Chapter(id string) (*ChapterRecord, bool) {
	for i := range c.Chapters {
		if c.Chapters[i].ID == id {
			return &c.Chapters[i], true
		}
	}
	return nil, false
}

// DefaultCatalog returns the compiled-in content: Kahneman's Part 2, chapters 10-18
func DefaultCatalog() *Catalog {
	return &Catalog{
		Hero: Hero{
			Title:        "Galaxy of Biases",
			Subtitle:     "Leadership lessons from Thinking, Fast and Slow – Part 2",
			CallToAction: "Click a planet to start your journey",
			Description:  "An interactive galaxy that helps leaders spot & tame heuristics and biases from Kahneman's Part 2 (Ch 10-18).",
		},
		Chapters: []ChapterRecord{
			{
				ID:      "ch10",
				Order:   10,
				Title:   "Law of Small Numbers",
				Color:   mustHex("#F9C74F"),
				Pattern: textures.PatternStatistical,
				Summary: "Small samples mislead. Insist on adequate data before calling a trend.",
				Actions: []string{
					"Delay big bets until you have more than a handful of data points.",
					"Ask 'is this difference real or just random?' in every metrics review.",
					"Build a culture that prioritises statistical thinking.",
				},
			},
			{
				ID:      "ch11",
				Order:   11,
				Title:   "Anchoring",
				Color:   mustHex("#F9844A"),
				Pattern: textures.PatternCrystalline,
				Summary: "First numbers pull estimates like gravity—often by ~50 %.",
				Actions: []string{
					"Surface ranges before anyone names a single figure.",
					"Train teams to 'argue the opposite' to counter arbitrary anchors.",
					"Challenge anchors in negotiations with fresh reference points.",
				},
			},
			{
				ID:      "ch12",
				Order:   12,
				Title:   "Availability Heuristic",
				Color:   mustHex("#90BE6D"),
				Pattern: textures.PatternClouds,
				Summary: "What's vivid feels frequent. Recency ≠ reality.",
				Actions: []string{
					"Check long-run data before reacting to a loud anecdote.",
					"Ask: 'Is it truly common, or just easy to recall?'",
					"Highlight quiet facts to balance memorable stories.",
				},
			},
			{
				ID:      "ch13",
				Order:   13,
				Title:   "Emotion, Availability & Risk",
				Color:   mustHex("#43AA8B"),
				Pattern: textures.PatternMarble,
				Summary: "Feelings hijack risk perception and fuel media cascades.",
				Actions: []string{
					"Separate fear-driven talk-tracks from statistical threat levels.",
					"Calibrate tiny probabilities—don't ignore or overreact.",
					"Address rumours early with comparative context.",
				},
			},
			{
				ID:      "ch14",
				Order:   14,
				Title:   "Representativeness",
				Color:   mustHex("#577590"),
				Pattern: textures.PatternSedimentary,
				Summary: "Stereotypes > statistics in our heads. Base-rate neglect is costly.",
				Actions: []string{
					"Anchor forecasts on historical base rates, then adjust.",
					"Fight gut 'fit' instincts when hiring or scoping projects.",
					"Use Bayesian checklists: How diagnostic is this evidence?",
				},
			},
			{
				ID:      "ch15",
				Order:   15,
				Title:   "Conjunction Fallacy",
				Color:   mustHex("#277DA1"),
				Pattern: textures.PatternLightning,
				Summary: "Detailed stories feel likely but compound improbabilities.",
				Actions: []string{
					"Beware multi-condition plans—each 'and' slashes odds.",
					"Keep scenarios simple; layer detail after core viability.",
					"Teach teams to separate plausibility from probability.",
				},
			},
			{
				ID:      "ch16",
				Order:   16,
				Title:   "Causes Trump Statistics",
				Color:   mustHex("#4D908E"),
				Pattern: textures.PatternWaves,
				Summary: "We invent causes for noise and see patterns in randomness.",
				Actions: []string{
					"Ask 'could this just be variance?' before credit or blame.",
					"Normalise talking about luck alongside skill.",
					"Use premortems to expose multiple possible futures.",
				},
			},
			{
				ID:      "ch17",
				Order:   17,
				Title:   "Regression to Mean",
				Color:   mustHex("#F94144"),
				Pattern: textures.PatternVolcanic,
				Summary: "Extremes fade naturally; interventions often get false credit.",
				Actions: []string{
					"Don't over-penalise single bad months—or over-celebrate spikes.",
					"Compare interventions to baseline variation, not anecdotes.",
					"Keep reinforcing good behaviour; don't let regression fool you.",
				},
			},
			{
				ID:      "ch18",
				Order:   18,
				Title:   "Taming Intuitive Predictions",
				Color:   mustHex("#F3722C"),
				Pattern: textures.PatternOrganic,
				Summary: "Gut forecasts ignore evidence quality—temper them with base rates.",
				Actions: []string{
					"Start every estimate with the outside-view average.",
					"Shrink bold forecasts by the evidence's real correlation.",
					"State confidence intervals publicly to model uncertainty.",
				},
			},
		},
	}
}
