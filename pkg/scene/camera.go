package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera looks at a fixed target and moves its eye according to the active
// movement flags.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Speed  float32

	MovingForward  bool
	MovingBackward bool
	MovingLeft     bool
	MovingRight    bool
	MovingUp       bool
	MovingDown     bool
}

// NewCamera creates a camera with all movement flags cleared
func NewCamera(eye, target, up mgl32.Vec3, speed float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     up,
		Speed:  speed,
	}
}

// SetMoving sets the movement flag bound to key. It reports false for keys
// that are not movement keys.
func (c *Camera) SetMoving(key Key, moving bool) bool {
	switch key {
	case KeyForward:
		c.MovingForward = moving
	case KeyBackward:
		c.MovingBackward = moving
	case KeyLeft:
		c.MovingLeft = moving
	case KeyRight:
		c.MovingRight = moving
	case KeyAscend:
		c.MovingUp = moving
	case KeyDescend:
		c.MovingDown = moving
	default:
		return false
	}
	return true
}

// IsMoving reports whether any movement flag is set
func (c *Camera) IsMoving() bool {
	return c.MovingForward || c.MovingBackward ||
		c.MovingLeft || c.MovingRight ||
		c.MovingUp || c.MovingDown
}

// FrontVector returns the normalized direction from the eye to the target
func (c *Camera) FrontVector() mgl32.Vec3 {
	return normalizeOrZero(c.Target.Sub(c.Eye))
}

// RightVector returns the normalized direction perpendicular to the view and the up axis
func (c *Camera) RightVector() mgl32.Vec3 {
	return normalizeOrZero(c.Target.Sub(c.Eye).Cross(c.Up))
}

// UpVector returns the normalized up axis
func (c *Camera) UpVector() mgl32.Vec3 {
	return normalizeOrZero(c.Up)
}

// Displacement returns how far the eye moves in dt seconds.
//
// Every direction is taken from the eye position at the start of the tick and
// the per-flag contributions are summed as-is, so two perpendicular flags move
// the eye sqrt(2) times faster than one.
func (c *Camera) Displacement(dt float32) mgl32.Vec3 {
	var d mgl32.Vec3
	if !c.IsMoving() {
		return d
	}

	step := c.Speed * dt
	front := c.FrontVector()
	right := c.RightVector()
	up := c.UpVector()

	// Forward/Backward
	if c.MovingForward {
		d = d.Add(front.Mul(step))
	}
	if c.MovingBackward {
		d = d.Sub(front.Mul(step))
	}

	// Left/Right
	if c.MovingLeft {
		d = d.Sub(right.Mul(step))
	}
	if c.MovingRight {
		d = d.Add(right.Mul(step))
	}

	// Up/Down
	if c.MovingUp {
		d = d.Add(up.Mul(step))
	}
	if c.MovingDown {
		d = d.Sub(up.Mul(step))
	}

	return d
}

// Move integrates the active flags over dt seconds
func (c *Camera) Move(dt float32) {
	c.Eye = c.Eye.Add(c.Displacement(dt))
}

// ViewMatrix returns the look-at transform for the current eye
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// normalizeOrZero avoids the NaNs mgl32 produces for zero-length vectors,
// which happen when the eye reaches the target.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
