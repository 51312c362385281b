package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-tessellation/pkg/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultSettingsMatchScene(t *testing.T) {
	got := Default().Settings()
	want := scene.DefaultSettings()

	if got.Eye != want.Eye || got.Target != want.Target || got.Up != want.Up {
		t.Errorf("camera = %v %v %v, want %v %v %v", got.Eye, got.Target, got.Up, want.Eye, want.Target, want.Up)
	}
	if got.Speed != want.Speed || got.Width != want.Width || got.Height != want.Height {
		t.Errorf("speed/size = %v %dx%d", got.Speed, got.Width, got.Height)
	}
	if mgl32.Abs(got.FOV-want.FOV) > 1e-5 {
		t.Errorf("fov = %v, want %v", got.FOV, want.FOV)
	}
	if got.Params != want.Params {
		t.Errorf("params = %+v, want %+v", got.Params, want.Params)
	}
	if got.LightPosition != want.LightPosition || got.LightColor != want.LightColor {
		t.Errorf("light = %v %v", got.LightPosition, got.LightColor)
	}
	if got.ClockMode != scene.ClockRealtime {
		t.Errorf("clock mode = %v, want realtime", got.ClockMode)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
timing:
  mode: fixed
  fixed_step: 0.02
camera:
  eye: [1, 2, 3]
tessellation:
  factor: 16
log:
  level: debug
capture:
  frames: 10
  output: out.png
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := cfg.Settings()
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", s.Width, s.Height)
	}
	if s.ClockMode != scene.ClockFixed || s.FixedStep != 0.02 {
		t.Errorf("timing = %v %v", s.ClockMode, s.FixedStep)
	}
	if want := (mgl32.Vec3{1, 2, 3}); s.Eye != want {
		t.Errorf("eye = %v, want %v", s.Eye, want)
	}
	if s.Target != scene.DefaultTarget {
		t.Errorf("target = %v, want default %v", s.Target, scene.DefaultTarget)
	}
	if s.Params.TessellationFactor != 16 {
		t.Errorf("tessellation = %v, want 16", s.Params.TessellationFactor)
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", lvl)
	}
	if cfg.Capture.Frames != 10 || cfg.Capture.Output != "out.png" {
		t.Errorf("capture = %+v", cfg.Capture)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero width", "window: {width: 0}", "window size"},
		{"bad mode", "timing: {mode: reference}", "timing.mode"},
		{"zero fixed step", "timing: {mode: fixed, fixed_step: 0}", "timing.fixed_step"},
		{"short eye", "camera: {eye: [1, 2]}", "camera.eye"},
		{"zero up", "camera: {up: [0, 0, 0]}", "camera.up"},
		{"tessellation too high", "tessellation: {factor: 65}", "tessellation.factor"},
		{"tessellation too low", "tessellation: {factor: 0.5}", "tessellation.factor"},
		{"short light", "light: {color: [1, 1, 1]}", "light.color"},
		{"hot reload without dir", "shaders: {hot_reload: true}", "shaders.hot_reload"},
		{"bad log level", "log: {level: chatty}", "log.level"},
		{"negative frames", "capture: {frames: -1}", "capture.frames"},
		{"output without frames", "capture: {output: out.png}", "capture.output"},
		{"clip planes", "camera: {near: 1, far: 0.5}", "clip planes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "window: [")); err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("Load() error = %v, want unmarshal error", err)
	}
}
