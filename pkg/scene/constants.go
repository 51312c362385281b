package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Tessellation limits
const (
	MinTessellationFactor = 1.0
	MaxTessellationFactor = 64.0
	TessellationStep      = 0.5
)

// Camera defaults
const (
	DefaultMoveSpeed = 10.0

	// Field of view and clip planes
	DefaultFOV  = math.Pi / 4
	DefaultNear = 0.01
	DefaultFar  = 100.0
)

// Surface defaults
const (
	DefaultTessellationFactor = MaxTessellationFactor
	DefaultScaling            = 3.0
	DefaultDisplacementLevel  = 0.1

	// The quad is stretched along X relative to the uniform scaling.
	WorldAspectX = 1.5
)

// DefaultFixedStep is the per-tick advance in seconds for fixed-step timing.
const DefaultFixedStep = math.Pi * 0.0125

var (
	DefaultEye    = mgl32.Vec3{0, 4, -10}
	DefaultTarget = mgl32.Vec3{1.5, 0, 0}
	DefaultUp     = mgl32.Vec3{0, 1, 0}

	DefaultLightPosition = mgl32.Vec4{-10, 10, 10, 1}
	DefaultLightColor    = mgl32.Vec4{1, 1, 1, 1}
)
