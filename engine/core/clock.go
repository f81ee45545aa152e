package core

import "time"

// Clock measures wall time in seconds since Start.
type Clock struct {
	now       func() time.Time
	startTime time.Time
	running   bool
	elapsed   float64
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource uses now instead of the wall clock, so frame timing can
// be driven by hand.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.now().Sub(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.running = true
	c.elapsed = 0
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

// Elapsed returns the seconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
