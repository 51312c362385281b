// Package scene holds the per-frame state of the tessellation demo: the
// camera, the frame clock and the render parameters, along with the
// controller that applies key events to them and produces a snapshot for
// each frame. It has no dependency on a window or a graphics context.
package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Settings configure a Controller at startup.
type Settings struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Speed  float32

	FOV    float32 // radians
	Near   float32
	Far    float32
	Width  int
	Height int

	Params RenderParameters

	LightPosition mgl32.Vec4
	LightColor    mgl32.Vec4

	ClockMode ClockMode
	FixedStep float32 // seconds, used by ClockFixed
}

// DefaultSettings returns the settings of the original demo scene
func DefaultSettings() Settings {
	return Settings{
		Eye:           DefaultEye,
		Target:        DefaultTarget,
		Up:            DefaultUp,
		Speed:         DefaultMoveSpeed,
		FOV:           DefaultFOV,
		Near:          DefaultNear,
		Far:           DefaultFar,
		Width:         1600,
		Height:        900,
		Params:        DefaultRenderParameters(),
		LightPosition: DefaultLightPosition,
		LightColor:    DefaultLightColor,
		ClockMode:     ClockRealtime,
		FixedStep:     DefaultFixedStep,
	}
}

// Snapshot is everything the submitter needs to draw one frame.
type Snapshot struct {
	World      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	LightPosition mgl32.Vec4
	LightColor    mgl32.Vec4
	Eye           mgl32.Vec4

	TessellationFactor float32
	Scaling            float32
	DisplacementLevel  float32
	Wireframe          bool

	Elapsed float32
	Delta   float32
}

// Controller owns the camera, clock and render parameters for one session.
// It is not safe for concurrent use; the event pump drives it from one thread.
type Controller struct {
	camera *Camera
	clock  *Clock
	params RenderParameters

	fov, near, far float32
	projection     mgl32.Mat4

	lightPosition mgl32.Vec4
	lightColor    mgl32.Vec4

	exitRequested bool
}

// NewController creates a controller from s
func NewController(s Settings) *Controller {
	s.Params.TessellationFactor = clampTessellation(s.Params.TessellationFactor)

	c := &Controller{
		camera:        NewCamera(s.Eye, s.Target, s.Up, s.Speed),
		clock:         NewClock(s.ClockMode, s.FixedStep),
		params:        s.Params,
		fov:           s.FOV,
		near:          s.Near,
		far:           s.Far,
		lightPosition: s.LightPosition,
		lightColor:    s.LightColor,
	}
	c.SetViewport(s.Width, s.Height)
	return c
}

// HandleKey applies one input transition
func (c *Controller) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyForward, KeyBackward, KeyLeft, KeyRight, KeyAscend, KeyDescend:
		switch ev.Action {
		case KeyDown, KeyRepeat:
			c.camera.SetMoving(ev.Key, true)
		case KeyUp:
			c.camera.SetMoving(ev.Key, false)
		}

	case KeyTessUp:
		if ev.Action != KeyUp {
			c.params.IncreaseTessellation()
		}

	case KeyTessDown:
		if ev.Action != KeyUp {
			c.params.DecreaseTessellation()
		}

	case KeyWireframe:
		if ev.Action == KeyDown {
			c.params.ToggleWireframe()
		}

	case KeyExit:
		if ev.Action == KeyDown {
			c.exitRequested = true
		}
	}
}

// Advance runs one frame update at the monotonic reading now and returns the
// parameters for the frame.
func (c *Controller) Advance(now time.Duration) Snapshot {
	elapsed, dt := c.clock.Tick(now)

	c.camera.Move(dt)

	eye := c.camera.Eye
	return Snapshot{
		World:              c.params.WorldMatrix(),
		View:               c.camera.ViewMatrix(),
		Projection:         c.projection,
		LightPosition:      c.lightPosition,
		LightColor:         c.lightColor,
		Eye:                mgl32.Vec4{eye[0], eye[1], eye[2], 1},
		TessellationFactor: c.params.TessellationFactor,
		Scaling:            c.params.Scaling,
		DisplacementLevel:  c.params.DisplacementLevel,
		Wireframe:          c.params.Wireframe,
		Elapsed:            elapsed,
		Delta:              dt,
	}
}

// SetViewport rebuilds the projection for a new framebuffer size. Degenerate
// sizes (a minimized window) keep the previous projection.
func (c *Controller) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	c.projection = mgl32.Perspective(c.fov, aspect, c.near, c.far)
}

// ExitRequested reports whether the exit key has been pressed
func (c *Controller) ExitRequested() bool {
	return c.exitRequested
}

// Camera returns the controlled camera
func (c *Controller) Camera() *Camera {
	return c.camera
}

// Clock returns the frame clock
func (c *Controller) Clock() *Clock {
	return c.clock
}

// Params returns a copy of the current render parameters
func (c *Controller) Params() RenderParameters {
	return c.params
}

// Projection returns the current projection matrix
func (c *Controller) Projection() mgl32.Mat4 {
	return c.projection
}
