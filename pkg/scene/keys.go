package scene

// Key is a logical key code. The window layer translates its native codes
// into these before handing events to the controller.
type Key int

const (
	KeyUnknown Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
	KeyAscend
	KeyDescend
	KeyTessUp
	KeyTessDown
	KeyWireframe
	KeyExit
)

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeyForward:   "forward",
	KeyBackward:  "backward",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyAscend:    "ascend",
	KeyDescend:   "descend",
	KeyTessUp:    "tess-up",
	KeyTessDown:  "tess-down",
	KeyWireframe: "wireframe",
	KeyExit:      "exit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is the transition a key went through.
type Action int

const (
	KeyDown Action = iota
	KeyUp
	KeyRepeat
)

func (a Action) String() string {
	switch a {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyRepeat:
		return "repeat"
	}
	return "unknown"
}

// KeyEvent is a single discrete input transition.
type KeyEvent struct {
	Key    Key
	Action Action
}
