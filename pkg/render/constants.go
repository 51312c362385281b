package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-tessellation/pkg/scene"
)

// Key bindings from GLFW key codes to logical keys
var keyBindings = map[glfw.Key]scene.Key{
	glfw.KeyW:            scene.KeyForward,
	glfw.KeyS:            scene.KeyBackward,
	glfw.KeyA:            scene.KeyLeft,
	glfw.KeyD:            scene.KeyRight,
	glfw.KeySpace:        scene.KeyAscend,
	glfw.KeyLeftControl:  scene.KeyDescend,
	glfw.KeyRightControl: scene.KeyDescend,
	glfw.KeyUp:           scene.KeyTessUp,
	glfw.KeyDown:         scene.KeyTessDown,
	glfw.KeyR:            scene.KeyWireframe,
	glfw.KeyEscape:       scene.KeyExit,
}

// translateKey maps a GLFW key transition onto a controller event.
// Unbound keys report false.
func translateKey(key glfw.Key, action glfw.Action) (scene.KeyEvent, bool) {
	k, ok := keyBindings[key]
	if !ok {
		return scene.KeyEvent{}, false
	}

	var a scene.Action
	switch action {
	case glfw.Press:
		a = scene.KeyDown
	case glfw.Release:
		a = scene.KeyUp
	case glfw.Repeat:
		a = scene.KeyRepeat
	default:
		return scene.KeyEvent{}, false
	}
	return scene.KeyEvent{Key: k, Action: a}, true
}

// Texture units shared with the shaders
const (
	diffuseUnit      = 0
	displacementUnit = 1
	normalUnit       = 2
)

// clearColor is the background behind the quad
var clearColor = mgl32.Vec4{0.0, 0.125, 0.3, 1.0}
