package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"galaxy/audio"
	"galaxy/config"
	"galaxy/core"
	"galaxy/inspect"
	"galaxy/rendering"
	"galaxy/rendering/opengl"
	"galaxy/rendering/raylib"
	"galaxy/ui"
)

// maxFrameStep caps dt after a stall so tweens do not jump to the end
const maxFrameStep = 250 * time.Millisecond

func main() {
	runtime.LockOSThread()

	var (
		configPath = flag.String("config", "settings.json", "Settings file (missing file uses defaults)")
		_          = flag.Int("width", 1280, "Window width")
		_          = flag.Int("height", 720, "Window height")
		_          = flag.Bool("vsync", true, "Wait for vertical sync")
		_          = flag.String("renderer", "gl", "Renderer backend (gl, raylib)")
		_          = flag.String("variant", "classic", "Galaxy variant (classic, explode, scatter)")
		_          = flag.Bool("motion", true, "Orbit the planets")
		_          = flag.Int64("seed", 0, "Random seed, 0 for time based")
		_          = flag.Bool("mute", false, "Disable sound")
		_          = flag.Float64("volume", 0.6, "Sound volume 0..1")
		_          = flag.String("inspect", "", "Serve frame snapshots on this address, e.g. :8080")
	)
	flag.Parse()

	settings, err := loadSettings(*configPath, flag.CommandLine)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	fmt.Println("=== Galaxy of Biases ===")
	fmt.Printf("Variant: %s\n", settings.Galaxy.Variant)
	fmt.Printf("Window: %dx%d (%s)\n", settings.Window.Width, settings.Window.Height, settings.Window.Renderer)

	backend, err := newBackend(settings.Window)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer backend.Terminate()

	width, height := backend.Size()
	catalog := core.DefaultCatalog()
	overlay, err := ui.New(catalog, width, height)
	if err != nil {
		log.Fatalf("Failed to create overlay: %v", err)
	}

	// texture generation takes a moment; show the loading screen first
	overlay.SetStatus("Loading galaxy...")
	backend.RenderStatus(overlay)

	params, err := paramsFrom(settings.Galaxy)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	world, err := core.NewWorld(catalog, params)
	if err != nil {
		if !errors.Is(err, core.ErrEmptyCatalog) {
			log.Fatalf("Failed to build galaxy: %v", err)
		}
		log.Printf("Failed to build galaxy: %v", err)
		overlay.SetStatus("Error: no chapter data loaded")
		world = nil
	} else {
		overlay.SetStatus("")
		defer world.Teardown()
	}

	controller := rendering.NewController(world, overlay, width, height)
	backend.SetInputHandler(controller)

	if world != nil {
		world.Subscribe(core.ListenerFunc(backend.OnWorldEvent))

		if settings.Audio.Enabled {
			sounds := audio.NewSoundManager(settings.Audio.Volume)
			if err := sounds.Initialize(); err != nil {
				log.Printf("Audio disabled: %v", err)
			} else {
				defer sounds.Cleanup()
				world.Subscribe(sounds)
			}
		}
	}

	var inspector *inspect.Server
	if settings.Inspect.Addr != "" && world != nil {
		inspector = inspect.NewServer(settings.Inspect.Addr, time.Duration(settings.Inspect.IntervalMs)*time.Millisecond)
		if err := inspector.Start(); err != nil {
			log.Printf("Inspector disabled: %v", err)
			inspector = nil
		} else {
			defer inspector.Close()
		}
	}

	fmt.Println("\nControls:")
	fmt.Println("  Mouse: Hover a planet to highlight, click to open its chapter")
	fmt.Println("  ESC: Back to the galaxy")
	fmt.Println("  M/Space: Pause orbits")
	fmt.Println("  R: Reset the galaxy")
	fmt.Println("  Q: Quit")

	lastTime := time.Now()
	frameCount := 0
	lastFPSTime := time.Now()
	fps := 0.0

	for !backend.ShouldClose() {
		backend.PollEvents()

		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now
		if dt > maxFrameStep {
			dt = maxFrameStep
		}

		if world == nil {
			backend.RenderStatus(overlay)
			continue
		}

		world.Update(dt)
		overlay.Update(world, dt)
		backend.SetCursor(controller.Cursor())
		backend.Render(world, overlay)

		if inspector != nil {
			inspector.Publish(inspect.Capture(world, fps))
		}

		frameCount++
		if elapsed := now.Sub(lastFPSTime); elapsed >= time.Second {
			fps = float64(frameCount) / elapsed.Seconds()
			fmt.Printf("\rFPS: %.1f | Planets: %d | Effects: %d   ", fps, len(world.Bodies()), len(world.Effects()))
			frameCount = 0
			lastFPSTime = now
		}
	}

	fmt.Println("\nShutting down...")
}

// loadSettings reads the settings file, then applies only the flags that
// were set explicitly so file values survive flag defaults.
func loadSettings(path string, fs *flag.FlagSet) (config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return settings, err
	}
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr == nil {
			ferr = settings.Override(f.Name, f.Value.String())
		}
	})
	if ferr != nil {
		return settings, ferr
	}
	return settings, settings.Validate()
}

func paramsFrom(g config.GalaxySettings) (core.Params, error) {
	p := core.DefaultParams()
	v, err := core.ParseVariant(g.Variant)
	if err != nil {
		return p, err
	}
	p.Variant = v
	p.MotionEnabled = g.MotionEnabled
	p.RingOrder = g.RingOrder
	p.TiltedOrders = g.TiltedOrders
	p.Seed = g.Seed
	return p, nil
}

func newBackend(w config.WindowSettings) (rendering.Backend, error) {
	switch w.Renderer {
	case "raylib":
		return raylib.NewRenderer(w.Width, w.Height, w.Title, w.VSync), nil
	case "gl":
		return opengl.NewRenderer(opengl.Options{
			Width:  w.Width,
			Height: w.Height,
			Title:  w.Title,
			VSync:  w.VSync,
		})
	}
	return nil, fmt.Errorf("unknown renderer %q", w.Renderer)
}
