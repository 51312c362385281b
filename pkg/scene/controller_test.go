package scene

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestMovementFlagsTrackLastEvent(t *testing.T) {
	movement := []Key{KeyForward, KeyBackward, KeyLeft, KeyRight, KeyAscend, KeyDescend}
	flag := func(c *Camera, k Key) bool {
		switch k {
		case KeyForward:
			return c.MovingForward
		case KeyBackward:
			return c.MovingBackward
		case KeyLeft:
			return c.MovingLeft
		case KeyRight:
			return c.MovingRight
		case KeyAscend:
			return c.MovingUp
		case KeyDescend:
			return c.MovingDown
		}
		t.Fatalf("not a movement key: %v", k)
		return false
	}

	rng := rand.New(rand.NewSource(7))
	c := NewController(DefaultSettings())
	last := make(map[Key]Action)

	for i := 0; i < 500; i++ {
		k := movement[rng.Intn(len(movement))]
		a := KeyDown
		if rng.Intn(2) == 0 {
			a = KeyUp
		}
		c.HandleKey(KeyEvent{Key: k, Action: a})
		last[k] = a

		for _, mk := range movement {
			want := last[mk] == KeyDown && hasEvent(last, mk)
			if got := flag(c.Camera(), mk); got != want {
				t.Fatalf("step %d: flag %v = %v, want %v", i, mk, got, want)
			}
		}
	}
}

func hasEvent(m map[Key]Action, k Key) bool {
	_, ok := m[k]
	return ok
}

func TestTessellationStaysInRange(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		presses int
		want    float32
	}{
		{"overdrive up", KeyTessUp, 500, MaxTessellationFactor},
		{"overdrive down", KeyTessDown, 500, MinTessellationFactor},
		{"one step down", KeyTessDown, 1, MaxTessellationFactor - TessellationStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(DefaultSettings())
			for i := 0; i < tt.presses; i++ {
				c.HandleKey(KeyEvent{Key: tt.key, Action: KeyDown})
				f := c.Params().TessellationFactor
				if f < MinTessellationFactor || f > MaxTessellationFactor {
					t.Fatalf("factor %v left range after %d presses", f, i+1)
				}
			}
			if got := c.Params().TessellationFactor; got != tt.want {
				t.Errorf("factor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTessellationRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewController(DefaultSettings())
	for i := 0; i < 2000; i++ {
		k := KeyTessUp
		if rng.Intn(2) == 0 {
			k = KeyTessDown
		}
		c.HandleKey(KeyEvent{Key: k, Action: KeyDown})
		f := c.Params().TessellationFactor
		if f < MinTessellationFactor || f > MaxTessellationFactor {
			t.Fatalf("factor %v out of range", f)
		}
	}
}

func TestTessellationIgnoresKeyUp(t *testing.T) {
	c := NewController(DefaultSettings())
	c.HandleKey(KeyEvent{Key: KeyTessDown, Action: KeyUp})
	if got := c.Params().TessellationFactor; got != DefaultTessellationFactor {
		t.Errorf("factor = %v after key up, want %v", got, DefaultTessellationFactor)
	}
	c.HandleKey(KeyEvent{Key: KeyTessDown, Action: KeyRepeat})
	if got := c.Params().TessellationFactor; got != DefaultTessellationFactor-TessellationStep {
		t.Errorf("factor = %v after repeat, want %v", got, DefaultTessellationFactor-TessellationStep)
	}
}

func TestWireframeToggleIsEdgeTriggered(t *testing.T) {
	c := NewController(DefaultSettings())

	events := []struct {
		action Action
		want   bool
	}{
		{KeyDown, true},
		{KeyRepeat, true},
		{KeyRepeat, true},
		{KeyUp, true},
		{KeyDown, false},
		{KeyUp, false},
		{KeyUp, false},
		{KeyDown, true},
	}

	for i, ev := range events {
		c.HandleKey(KeyEvent{Key: KeyWireframe, Action: ev.action})
		if got := c.Params().Wireframe; got != ev.want {
			t.Fatalf("event %d (%v): wireframe = %v, want %v", i, ev.action, got, ev.want)
		}
	}
}

func TestExitRequested(t *testing.T) {
	c := NewController(DefaultSettings())
	c.HandleKey(KeyEvent{Key: KeyExit, Action: KeyUp})
	if c.ExitRequested() {
		t.Fatal("exit requested on key up")
	}
	c.HandleKey(KeyEvent{Key: KeyExit, Action: KeyDown})
	if !c.ExitRequested() {
		t.Fatal("exit not requested on key down")
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	c := NewController(DefaultSettings())
	before := *c.Camera()
	params := c.Params()

	c.HandleKey(KeyEvent{Key: KeyUnknown, Action: KeyDown})
	c.HandleKey(KeyEvent{Key: Key(99), Action: KeyDown})

	if *c.Camera() != before {
		t.Error("camera changed on unknown key")
	}
	if c.Params() != params {
		t.Error("params changed on unknown key")
	}
	if c.ExitRequested() {
		t.Error("exit requested on unknown key")
	}
}

func TestNoFlagsNoMovement(t *testing.T) {
	s := DefaultSettings()
	s.ClockMode = ClockFixed
	s.FixedStep = 5

	c := NewController(s)
	for i := 0; i < 10; i++ {
		c.Advance(0)
	}
	if got := c.Camera().Eye; got != DefaultEye {
		t.Errorf("eye = %v, want %v", got, DefaultEye)
	}
}

func TestForwardMovesAlongView(t *testing.T) {
	s := DefaultSettings()
	s.ClockMode = ClockFixed
	s.FixedStep = 0.25

	c := NewController(s)
	c.HandleKey(KeyEvent{Key: KeyForward, Action: KeyDown})
	c.Advance(0)

	dir := DefaultTarget.Sub(DefaultEye).Normalize()
	want := DefaultEye.Add(dir.Mul(DefaultMoveSpeed * 0.25))
	if got := c.Camera().Eye; !vecNear(got, want) {
		t.Errorf("eye = %v, want %v", got, want)
	}
}

func TestDiagonalMovementIsNotNormalized(t *testing.T) {
	const dt = 0.1

	single := func(k Key) mgl32.Vec3 {
		cam := NewCamera(DefaultEye, DefaultTarget, DefaultUp, DefaultMoveSpeed)
		cam.SetMoving(k, true)
		return cam.Displacement(dt)
	}

	forward := single(KeyForward)
	right := single(KeyRight)

	cam := NewCamera(DefaultEye, DefaultTarget, DefaultUp, DefaultMoveSpeed)
	cam.SetMoving(KeyForward, true)
	cam.SetMoving(KeyRight, true)
	got := cam.Displacement(dt)

	if want := forward.Add(right); !vecNear(got, want) {
		t.Errorf("displacement = %v, want %v", got, want)
	}

	// Perpendicular contributions of equal length.
	wantLen := float32(DefaultMoveSpeed * dt * math.Sqrt2)
	if l := got.Len(); mgl32.Abs(l-wantLen) > eps {
		t.Errorf("|displacement| = %v, want %v", l, wantLen)
	}
}

func TestOpposingFlagsCancel(t *testing.T) {
	cam := NewCamera(DefaultEye, DefaultTarget, DefaultUp, DefaultMoveSpeed)
	for _, k := range []Key{KeyForward, KeyBackward, KeyLeft, KeyRight, KeyAscend, KeyDescend} {
		cam.SetMoving(k, true)
	}
	if d := cam.Displacement(1); !vecNear(d, mgl32.Vec3{}) {
		t.Errorf("displacement = %v, want zero", d)
	}
}

func TestAscendFollowsUpAxis(t *testing.T) {
	cam := NewCamera(DefaultEye, DefaultTarget, mgl32.Vec3{0, 2, 0}, 4)
	cam.SetMoving(KeyAscend, true)
	if d := cam.Displacement(0.5); !vecNear(d, mgl32.Vec3{0, 2, 0}) {
		t.Errorf("displacement = %v, want {0 2 0}", d)
	}
}

func TestEyeAtTargetDoesNotProduceNaN(t *testing.T) {
	cam := NewCamera(DefaultTarget, DefaultTarget, DefaultUp, DefaultMoveSpeed)
	cam.SetMoving(KeyForward, true)
	cam.SetMoving(KeyLeft, true)
	cam.Move(1)
	for i, v := range cam.Eye {
		if math.IsNaN(float64(v)) {
			t.Fatalf("eye[%d] is NaN", i)
		}
	}
	if cam.Eye != DefaultTarget {
		t.Errorf("eye = %v, want %v", cam.Eye, DefaultTarget)
	}
}

func TestSnapshot(t *testing.T) {
	s := DefaultSettings()
	s.ClockMode = ClockFixed
	c := NewController(s)
	c.HandleKey(KeyEvent{Key: KeyWireframe, Action: KeyDown})
	c.HandleKey(KeyEvent{Key: KeyTessDown, Action: KeyDown})

	snap := c.Advance(0)

	wantWorld := mgl32.Scale3D(DefaultScaling*WorldAspectX, DefaultScaling, DefaultScaling)
	if !snap.World.ApproxEqual(wantWorld) {
		t.Errorf("world = %v, want %v", snap.World, wantWorld)
	}
	if wantView := mgl32.LookAtV(DefaultEye, DefaultTarget, DefaultUp); !snap.View.ApproxEqual(wantView) {
		t.Errorf("view = %v, want %v", snap.View, wantView)
	}
	wantProj := mgl32.Perspective(DefaultFOV, 1600.0/900.0, DefaultNear, DefaultFar)
	if !snap.Projection.ApproxEqual(wantProj) {
		t.Errorf("projection = %v, want %v", snap.Projection, wantProj)
	}
	if want := (mgl32.Vec4{0, 4, -10, 1}); snap.Eye != want {
		t.Errorf("eye = %v, want %v", snap.Eye, want)
	}
	if snap.LightPosition != DefaultLightPosition || snap.LightColor != DefaultLightColor {
		t.Errorf("light = %v %v", snap.LightPosition, snap.LightColor)
	}
	if snap.TessellationFactor != 63.5 {
		t.Errorf("tessellation = %v, want 63.5", snap.TessellationFactor)
	}
	if snap.Scaling != DefaultScaling || snap.DisplacementLevel != DefaultDisplacementLevel {
		t.Errorf("scaling/displacement = %v/%v", snap.Scaling, snap.DisplacementLevel)
	}
	if !snap.Wireframe {
		t.Error("wireframe not carried into snapshot")
	}
}

func TestViewFollowsEye(t *testing.T) {
	c := NewController(DefaultSettings())
	c.Advance(0)
	c.HandleKey(KeyEvent{Key: KeyAscend, Action: KeyDown})
	snap := c.Advance(500 * time.Millisecond)

	wantEye := DefaultEye.Add(mgl32.Vec3{0, DefaultMoveSpeed * 0.5, 0})
	if !vecNear(c.Camera().Eye, wantEye) {
		t.Fatalf("eye = %v, want %v", c.Camera().Eye, wantEye)
	}
	if want := mgl32.LookAtV(wantEye, DefaultTarget, DefaultUp); !snap.View.ApproxEqualThreshold(want, eps) {
		t.Errorf("view = %v, want %v", snap.View, want)
	}
}

func TestSetViewportIgnoresDegenerateSize(t *testing.T) {
	c := NewController(DefaultSettings())
	before := c.Projection()
	c.SetViewport(0, 0)
	if c.Projection() != before {
		t.Error("projection changed for zero-sized viewport")
	}
	c.SetViewport(800, 800)
	if want := mgl32.Perspective(DefaultFOV, 1, DefaultNear, DefaultFar); !c.Projection().ApproxEqual(want) {
		t.Errorf("projection = %v, want %v", c.Projection(), want)
	}
}

func TestInitialTessellationClamped(t *testing.T) {
	s := DefaultSettings()
	s.Params.TessellationFactor = 200
	if got := NewController(s).Params().TessellationFactor; got != MaxTessellationFactor {
		t.Errorf("factor = %v, want %v", got, MaxTessellationFactor)
	}
}
