package render

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/leterax/go-tessellation/internal/openglhelper"
	"github.com/leterax/go-tessellation/pkg/app"
	"github.com/leterax/go-tessellation/pkg/config"
	"github.com/leterax/go-tessellation/pkg/scene"
)

// Renderer owns the window and GL resources and submits one frame per
// controller snapshot
type Renderer struct {
	cfg        config.Config
	window     *openglhelper.Window
	controller *scene.Controller

	shaders  fs.FS
	textured *openglhelper.Shader
	solid    *openglhelper.Shader
	quad     *openglhelper.PatchMesh
	textures *surfaceTextures
	watcher  *ShaderWatcher

	isClosed bool
}

// NewRenderer opens the window and builds every GL resource the quad needs.
// Any failure aborts setup.
func NewRenderer(cfg config.Config, controller *scene.Controller) (*Renderer, error) {
	// Create window
	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	Logger().Info("OpenGL context created", "version", window.GLVersion())

	r := &Renderer{
		cfg:        cfg,
		window:     window,
		controller: controller,
		shaders:    shaderFS(cfg.Shaders.Dir),
	}

	// Size the projection for the real framebuffer, not the requested window
	controller.SetViewport(window.Size())

	// Set up callbacks
	window.GLFWWindow().SetKeyCallback(r.keyCallback)
	window.GLFWWindow().SetFramebufferSizeCallback(r.framebufferSizeCallback)

	// Load shaders
	if err := r.loadShaders(); err != nil {
		r.Cleanup()
		return nil, err
	}

	// Load textures
	textures, err := loadSurfaceTextures(cfg.Textures)
	if err != nil {
		r.Cleanup()
		return nil, err
	}
	r.textures = textures

	r.quad = openglhelper.NewQuad()

	if cfg.Shaders.HotReload {
		watcher, err := NewShaderWatcher(cfg.Shaders.Dir)
		if err != nil {
			r.Cleanup()
			return nil, fmt.Errorf("failed to watch shaders: %w", err)
		}
		r.watcher = watcher
		Logger().Info("watching shaders", "dir", cfg.Shaders.Dir)
	}

	return r, nil
}

// loadShaders builds both programs. The current programs are replaced only
// when both compile.
func (r *Renderer) loadShaders() error {
	textured, err := openglhelper.LoadShader(r.shaders, texturedProgram)
	if err != nil {
		return fmt.Errorf("failed to load shader: %w", err)
	}
	solid, err := openglhelper.LoadShader(r.shaders, solidProgram)
	if err != nil {
		textured.Delete()
		return fmt.Errorf("failed to load shader: %w", err)
	}

	if r.textured != nil {
		r.textured.Delete()
	}
	if r.solid != nil {
		r.solid.Delete()
	}
	r.textured, r.solid = textured, solid

	// Sampler bindings never change for a program
	r.textured.Use()
	r.textured.SetInt("diffuseMap", diffuseUnit)
	r.textured.SetInt("displacementMap", displacementUnit)
	r.textured.SetInt("normalMap", normalUnit)
	r.solid.Use()
	r.solid.SetInt("displacementMap", displacementUnit)

	return nil
}

// reloadShaders rebuilds the programs after an edit, keeping the old ones on failure
func (r *Renderer) reloadShaders() {
	if err := r.loadShaders(); err != nil {
		Logger().Warn("shader reload rejected", "err", err)
		return
	}
	Logger().Info("shaders reloaded")
}

// Submit uploads snap and draws the quad
func (r *Renderer) Submit(snap scene.Snapshot) error {
	if r.watcher != nil && r.watcher.Changed() {
		r.reloadShaders()
	}

	r.window.Clear(clearColor)

	program := r.textured
	if snap.Wireframe {
		program = r.solid
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	program.Use()
	program.SetMat4("world", snap.World)
	program.SetMat4("view", snap.View)
	program.SetMat4("projection", snap.Projection)
	program.SetVec4("lightPosition", snap.LightPosition)
	program.SetVec4("lightColor", snap.LightColor)
	program.SetVec4("eyePosition", snap.Eye)
	program.SetFloat("tessellationFactor", snap.TessellationFactor)
	program.SetFloat("scaling", snap.Scaling)
	program.SetFloat("displacementLevel", snap.DisplacementLevel)

	r.textures.bind()
	r.quad.Draw()

	return checkGLError()
}

// checkGLError drains the GL error queue. A lost context is fatal; anything
// else is logged and rendering continues.
func checkGLError() error {
	for {
		code := gl.GetError()
		switch code {
		case gl.NO_ERROR:
			return nil
		case gl.CONTEXT_LOST:
			return scene.ErrDeviceLost
		default:
			Logger().Debug("GL error", "code", fmt.Sprintf("0x%04x", code))
		}
	}
}

// Capture writes the current back buffer to path as a PNG
func (r *Renderer) Capture(path string) error {
	width, height := r.window.Size()
	img := openglhelper.ReadPixels(width, height)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode capture: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write capture: %w", err)
	}
	Logger().Info("frame captured", "path", path, "width", width, "height", height)
	return nil
}

// Run drives the event pump until the window closes. With capture
// configured the loop stops after capture.frames frames and the last one is
// written to capture.output.
func (r *Renderer) Run() error {
	defer r.Cleanup()

	loop := &app.Loop{
		Window:     r.window,
		Controller: r.controller,
		Submitter:  r,
		MaxFrames:  r.cfg.Capture.Frames,
	}

	if output := r.cfg.Capture.Output; output != "" {
		target := r.cfg.Capture.Frames
		loop.AfterSubmit = func(frame int, _ scene.Snapshot) error {
			if frame != target {
				return nil
			}
			return r.Capture(output)
		}
	}

	err := loop.Run()
	Logger().Info("render loop finished", "frames", loop.Frames())
	if errors.Is(err, scene.ErrDeviceLost) {
		return fmt.Errorf("rendering stopped: %w", err)
	}
	return err
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	if r.isClosed {
		return
	}
	r.isClosed = true

	if r.watcher != nil {
		_ = r.watcher.Close()
	}
	if r.quad != nil {
		r.quad.Delete()
	}
	if r.textures != nil {
		r.textures.delete()
	}
	if r.textured != nil {
		r.textured.Delete()
	}
	if r.solid != nil {
		r.solid.Delete()
	}

	// Close window
	r.window.Close()
}

// Callback functions
func (r *Renderer) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	ev, ok := translateKey(key, action)
	if !ok {
		return
	}
	r.controller.HandleKey(ev)
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized
		return
	}
	r.window.OnResize(width, height)
	r.controller.SetViewport(width, height)
}
