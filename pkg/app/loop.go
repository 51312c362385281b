// Package app runs the single-threaded event pump: poll input, advance one
// frame, submit it, present, repeat.
package app

import (
	"fmt"
	"time"

	"github.com/leterax/go-tessellation/pkg/scene"
)

// Window is the native window and message pump. PollEvents dispatches any
// pending input through callbacks on the calling thread.
type Window interface {
	PollEvents()
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
}

// Submitter uploads a frame snapshot and issues the draw call.
type Submitter interface {
	Submit(scene.Snapshot) error
}

// Controller is the part of scene.Controller the loop drives.
type Controller interface {
	Advance(now time.Duration) scene.Snapshot
	ExitRequested() bool
}

// Loop ties a window, a controller and a submitter together.
type Loop struct {
	Window     Window
	Controller Controller
	Submitter  Submitter

	// Now returns a monotonic reading. Defaults to time since Run was called.
	Now func() time.Duration

	// MaxFrames stops the loop after this many frames when positive.
	MaxFrames int

	// AfterSubmit, if set, runs after each frame is drawn and before it is
	// presented, so the back buffer still holds it. frame counts from 1. A
	// non-nil error stops the loop.
	AfterSubmit func(frame int, snap scene.Snapshot) error

	frames int
}

// Frames returns the number of frames presented so far
func (l *Loop) Frames() int {
	return l.frames
}

// Run pumps events and renders until the window closes, exit is requested,
// MaxFrames is reached or the submitter reports the device lost.
func (l *Loop) Run() error {
	now := l.Now
	if now == nil {
		start := time.Now()
		now = func() time.Duration { return time.Since(start) }
	}

	for {
		l.Window.PollEvents()

		if l.Controller.ExitRequested() {
			l.Window.SetShouldClose(true)
		}
		if l.Window.ShouldClose() {
			return nil
		}

		snap := l.Controller.Advance(now())
		if err := l.Submitter.Submit(snap); err != nil {
			return fmt.Errorf("submit frame %d: %w", l.frames, err)
		}
		if l.AfterSubmit != nil {
			if err := l.AfterSubmit(l.frames+1, snap); err != nil {
				return err
			}
		}
		l.Window.SwapBuffers()
		l.frames++

		if l.MaxFrames > 0 && l.frames >= l.MaxFrames {
			l.Window.SetShouldClose(true)
			return nil
		}
	}
}
