package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/leterax/go-tessellation/pkg/config"
	"github.com/leterax/go-tessellation/pkg/render"
	"github.com/leterax/go-tessellation/pkg/scene"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "YAML config file (empty for built-in defaults)")
	width := flag.Int("width", 0, "Window width")
	height := flag.Int("height", 0, "Window height")
	fixed := flag.Bool("fixed", false, "Advance time by a fixed step per frame instead of the wall clock")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 runs until closed)")
	capture := flag.String("capture", "", "Write the last frame to this PNG file")
	shaderDir := flag.String("shaders", "", "Load shaders from this directory instead of the embedded copies")
	hotReload := flag.Bool("hot-reload", false, "Rebuild shaders when files in -shaders change")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Explicit flags win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fixed":
			if *fixed {
				cfg.Timing.Mode = scene.ClockFixed.String()
			} else {
				cfg.Timing.Mode = scene.ClockRealtime.String()
			}
		case "frames":
			cfg.Capture.Frames = *frames
		case "capture":
			cfg.Capture.Output = *capture
		case "shaders":
			cfg.Shaders.Dir = *shaderDir
		case "hot-reload":
			cfg.Shaders.HotReload = *hotReload
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level, _ := cfg.Log.SlogLevel()
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	controller := scene.NewController(cfg.Settings())
	render.Logger().Info("starting",
		"clock", controller.Clock().Mode(),
		"tessellation", controller.Params().TessellationFactor)

	// Initialize the renderer
	renderer, err := render.NewRenderer(cfg, controller)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	if err := renderer.Run(); err != nil {
		log.Fatalf("Renderer stopped: %v", err)
	}
}
