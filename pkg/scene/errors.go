package scene

import "errors"

// ErrDeviceLost is returned by a submitter when the rendering context is gone
// and no further frames can be drawn.
var ErrDeviceLost = errors.New("scene: rendering device lost")
