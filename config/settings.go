package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidVariant is returned for an unknown galaxy variant name
var ErrInvalidVariant = errors.New("invalid galaxy variant")

// Variants lists the accepted galaxy variant names
var Variants = []string{"classic", "explode", "scatter"}

type Settings struct {
	Window  WindowSettings  `json:"window"`
	Galaxy  GalaxySettings  `json:"galaxy"`
	Audio   AudioSettings   `json:"audio"`
	Inspect InspectSettings `json:"inspect"`
}

type WindowSettings struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Title    string `json:"title"`
	VSync    bool   `json:"vsync"`
	Renderer string `json:"renderer"` // gl or raylib
}

type GalaxySettings struct {
	Variant       string `json:"variant"`
	RingOrder     int    `json:"ringOrder"`
	TiltedOrders  []int  `json:"tiltedOrders"`
	MotionEnabled bool   `json:"motionEnabled"`
	Seed          int64  `json:"seed"`
}

type AudioSettings struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"` // 0..1
}

type InspectSettings struct {
	Addr       string `json:"addr"` // empty disables the inspector
	IntervalMs int    `json:"intervalMs"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:    1280,
			Height:   720,
			Title:    "Galaxy of Biases",
			VSync:    true,
			Renderer: "gl",
		},
		Galaxy: GalaxySettings{
			Variant:       "classic",
			RingOrder:     14,
			TiltedOrders:  []int{12, 15, 17},
			MotionEnabled: true,
		},
		Audio: AudioSettings{
			Enabled: true,
			Volume:  0.6,
		},
		Inspect: InspectSettings{
			IntervalMs: 100,
		},
	}
}

// Load overlays the JSON file at path onto the defaults. A missing file
// yields the defaults; a malformed one is an error. Values are not checked
// here since flags may still override them; call Validate afterwards.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return s, fmt.Errorf("error parsing %s: %w", path, err)
	}
	fmt.Printf("Loaded settings: variant %s, %dx%d\n", s.Galaxy.Variant, s.Window.Width, s.Window.Height)
	return s, nil
}

// Validate rejects settings the app cannot run with
func (s *Settings) Validate() error {
	if !validVariant(s.Galaxy.Variant) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidVariant, s.Galaxy.Variant, strings.Join(Variants, ", "))
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	switch s.Window.Renderer {
	case "gl", "raylib":
	default:
		return fmt.Errorf("unknown renderer %q (want gl or raylib)", s.Window.Renderer)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v outside 0..1", s.Audio.Volume)
	}
	if s.Inspect.IntervalMs <= 0 {
		return fmt.Errorf("inspect interval %dms must be positive", s.Inspect.IntervalMs)
	}
	return nil
}

func validVariant(name string) bool {
	for _, v := range Variants {
		if v == name {
			return true
		}
	}
	return false
}

// Override applies one command line flag by name. Flags win over the file.
func (s *Settings) Override(name, value string) error {
	var err error
	switch name {
	case "width":
		s.Window.Width, err = strconv.Atoi(value)
	case "height":
		s.Window.Height, err = strconv.Atoi(value)
	case "vsync":
		s.Window.VSync, err = strconv.ParseBool(value)
	case "renderer":
		s.Window.Renderer = value
	case "variant":
		s.Galaxy.Variant = strings.ToLower(value)
	case "motion":
		s.Galaxy.MotionEnabled, err = strconv.ParseBool(value)
	case "seed":
		s.Galaxy.Seed, err = strconv.ParseInt(value, 10, 64)
	case "mute":
		var mute bool
		mute, err = strconv.ParseBool(value)
		s.Audio.Enabled = !mute
	case "volume":
		s.Audio.Volume, err = strconv.ParseFloat(value, 64)
	case "inspect":
		s.Inspect.Addr = value
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("flag -%s: %w", name, err)
	}
	return nil
}
