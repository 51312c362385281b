package scene

import (
	"fmt"
	"time"
)

// ClockMode selects how a Clock advances. It is fixed when the clock is built.
type ClockMode int

const (
	// ClockRealtime derives time from the wall-clock readings passed to Tick.
	ClockRealtime ClockMode = iota
	// ClockFixed advances by a constant step per tick and ignores the readings.
	ClockFixed
)

func (m ClockMode) String() string {
	switch m {
	case ClockRealtime:
		return "realtime"
	case ClockFixed:
		return "fixed"
	}
	return fmt.Sprintf("ClockMode(%d)", int(m))
}

// ParseClockMode converts a configuration string into a ClockMode
func ParseClockMode(s string) (ClockMode, error) {
	switch s {
	case "realtime", "":
		return ClockRealtime, nil
	case "fixed":
		return ClockFixed, nil
	}
	return 0, fmt.Errorf("unknown clock mode %q", s)
}

// Clock tracks elapsed time and the delta since the previous tick, in seconds.
type Clock struct {
	mode      ClockMode
	fixedStep float32

	started bool
	start   time.Duration
	elapsed float32
	delta   float32
}

// NewRealtimeClock creates a clock driven by monotonic wall-clock readings
func NewRealtimeClock() *Clock {
	return &Clock{mode: ClockRealtime}
}

// NewFixedClock creates a clock that advances by step seconds per tick
func NewFixedClock(step float32) *Clock {
	return &Clock{mode: ClockFixed, fixedStep: step}
}

// NewClock creates a clock in the given mode
func NewClock(mode ClockMode, fixedStep float32) *Clock {
	if mode == ClockFixed {
		return NewFixedClock(fixedStep)
	}
	return NewRealtimeClock()
}

// Mode returns the timing mode chosen at construction
func (c *Clock) Mode() ClockMode {
	return c.mode
}

// Tick advances the clock. now is a monotonic reading; the first realtime
// tick only records the origin and yields a zero delta.
func (c *Clock) Tick(now time.Duration) (elapsed, dt float32) {
	if c.mode == ClockFixed {
		c.elapsed += c.fixedStep
		c.delta = c.fixedStep
		return c.elapsed, c.delta
	}

	if !c.started {
		c.started = true
		c.start = now
	}
	prev := c.elapsed
	c.elapsed = float32((now - c.start).Seconds())
	c.delta = c.elapsed - prev
	return c.elapsed, c.delta
}

// Elapsed returns the time reached by the last tick
func (c *Clock) Elapsed() float32 {
	return c.elapsed
}

// Delta returns the delta computed by the last tick
func (c *Clock) Delta() float32 {
	return c.delta
}
