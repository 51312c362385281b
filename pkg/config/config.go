// Package config loads the demo's YAML configuration and turns it into
// controller settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/leterax/go-tessellation/pkg/scene"
)

type Config struct {
	Window       WindowConfig       `yaml:"window"`
	Timing       TimingConfig       `yaml:"timing"`
	Camera       CameraConfig       `yaml:"camera"`
	Tessellation TessellationConfig `yaml:"tessellation"`
	Surface      SurfaceConfig      `yaml:"surface"`
	Light        LightConfig        `yaml:"light"`
	Textures     TexturesConfig     `yaml:"textures"`
	Shaders      ShadersConfig      `yaml:"shaders"`
	Log          LogConfig          `yaml:"log"`
	Capture      CaptureConfig      `yaml:"capture"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// TimingConfig selects realtime or fixed-step timing. FixedStep is in seconds.
type TimingConfig struct {
	Mode      string  `yaml:"mode"`
	FixedStep float32 `yaml:"fixed_step"`
}

type CameraConfig struct {
	Eye        []float32 `yaml:"eye"`
	Target     []float32 `yaml:"target"`
	Up         []float32 `yaml:"up"`
	Speed      float32   `yaml:"speed"`
	FOVDegrees float32   `yaml:"fov_degrees"`
	Near       float32   `yaml:"near"`
	Far        float32   `yaml:"far"`
}

type TessellationConfig struct {
	Factor float32 `yaml:"factor"`
}

type SurfaceConfig struct {
	Scaling           float32 `yaml:"scaling"`
	DisplacementLevel float32 `yaml:"displacement_level"`
}

type LightConfig struct {
	Position []float32 `yaml:"position"`
	Color    []float32 `yaml:"color"`
}

// TexturesConfig points at image files. Empty paths use generated surfaces.
type TexturesConfig struct {
	Diffuse       string `yaml:"diffuse"`
	Displacement  string `yaml:"displacement"`
	Normal        string `yaml:"normal"`
	MaxSize       int    `yaml:"max_size"`
	GeneratedSize int    `yaml:"generated_size"`
}

// ShadersConfig overrides the embedded shaders with files from Dir.
type ShadersConfig struct {
	Dir       string `yaml:"dir"`
	HotReload bool   `yaml:"hot_reload"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// CaptureConfig writes the last frame to Output after Frames frames.
type CaptureConfig struct {
	Frames int    `yaml:"frames"`
	Output string `yaml:"output"`
}

// Default returns the configuration of the original demo
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1600,
			Height: 900,
			Title:  "OpenGL Tessellation",
		},
		Timing: TimingConfig{
			Mode:      scene.ClockRealtime.String(),
			FixedStep: scene.DefaultFixedStep,
		},
		Camera: CameraConfig{
			Eye:        vec3Slice(scene.DefaultEye),
			Target:     vec3Slice(scene.DefaultTarget),
			Up:         vec3Slice(scene.DefaultUp),
			Speed:      scene.DefaultMoveSpeed,
			FOVDegrees: mgl32.RadToDeg(scene.DefaultFOV),
			Near:       scene.DefaultNear,
			Far:        scene.DefaultFar,
		},
		Tessellation: TessellationConfig{
			Factor: scene.DefaultTessellationFactor,
		},
		Surface: SurfaceConfig{
			Scaling:           scene.DefaultScaling,
			DisplacementLevel: scene.DefaultDisplacementLevel,
		},
		Light: LightConfig{
			Position: vec4Slice(scene.DefaultLightPosition),
			Color:    vec4Slice(scene.DefaultLightColor),
		},
		Textures: TexturesConfig{
			MaxSize:       2048,
			GeneratedSize: 512,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	mode, err := scene.ParseClockMode(c.Timing.Mode)
	if err != nil {
		errs = append(errs, fmt.Errorf("timing.mode: %w", err))
	}
	if mode == scene.ClockFixed && c.Timing.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.fixed_step %v must be positive", c.Timing.FixedStep))
	}

	for name, v := range map[string][]float32{
		"camera.eye":    c.Camera.Eye,
		"camera.target": c.Camera.Target,
		"camera.up":     c.Camera.Up,
	} {
		if len(v) != 3 {
			errs = append(errs, fmt.Errorf("%s needs 3 components, got %d", name, len(v)))
		}
	}
	if len(c.Camera.Up) == 3 && toVec3(c.Camera.Up).Len() == 0 {
		errs = append(errs, errors.New("camera.up must not be zero"))
	}
	if c.Camera.Speed < 0 {
		errs = append(errs, fmt.Errorf("camera.speed %v must not be negative", c.Camera.Speed))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_degrees %v must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes %v..%v are invalid", c.Camera.Near, c.Camera.Far))
	}

	if f := c.Tessellation.Factor; f < scene.MinTessellationFactor || f > scene.MaxTessellationFactor {
		errs = append(errs, fmt.Errorf("tessellation.factor %v must be in [%v, %v]",
			f, scene.MinTessellationFactor, scene.MaxTessellationFactor))
	}

	for name, v := range map[string][]float32{
		"light.position": c.Light.Position,
		"light.color":    c.Light.Color,
	} {
		if len(v) != 4 {
			errs = append(errs, fmt.Errorf("%s needs 4 components, got %d", name, len(v)))
		}
	}

	if c.Textures.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("textures.max_size %d must not be negative", c.Textures.MaxSize))
	}
	if c.Textures.GeneratedSize <= 0 {
		errs = append(errs, fmt.Errorf("textures.generated_size %d must be positive", c.Textures.GeneratedSize))
	}
	if c.Shaders.HotReload && c.Shaders.Dir == "" {
		errs = append(errs, errors.New("shaders.hot_reload needs shaders.dir"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if c.Capture.Frames < 0 {
		errs = append(errs, fmt.Errorf("capture.frames %d must not be negative", c.Capture.Frames))
	}
	if c.Capture.Output != "" && c.Capture.Frames == 0 {
		errs = append(errs, errors.New("capture.output needs capture.frames"))
	}

	return errors.Join(errs...)
}

// Settings converts a validated configuration into controller settings
func (c Config) Settings() scene.Settings {
	mode, _ := scene.ParseClockMode(c.Timing.Mode)

	return scene.Settings{
		Eye:    toVec3(c.Camera.Eye),
		Target: toVec3(c.Camera.Target),
		Up:     toVec3(c.Camera.Up),
		Speed:  c.Camera.Speed,
		FOV:    mgl32.DegToRad(c.Camera.FOVDegrees),
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
		Width:  c.Window.Width,
		Height: c.Window.Height,
		Params: scene.RenderParameters{
			TessellationFactor: c.Tessellation.Factor,
			DisplacementLevel:  c.Surface.DisplacementLevel,
			Scaling:            c.Surface.Scaling,
		},
		LightPosition: toVec4(c.Light.Position),
		LightColor:    toVec4(c.Light.Color),
		ClockMode:     mode,
		FixedStep:     c.Timing.FixedStep,
	}
}

// SlogLevel parses the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func vec3Slice(v mgl32.Vec3) []float32 { return []float32{v[0], v[1], v[2]} }

func vec4Slice(v mgl32.Vec4) []float32 { return []float32{v[0], v[1], v[2], v[3]} }

func toVec3(s []float32) mgl32.Vec3 {
	var v mgl32.Vec3
	copy(v[:], s)
	return v
}

func toVec4(s []float32) mgl32.Vec4 {
	var v mgl32.Vec4
	copy(v[:], s)
	return v
}
