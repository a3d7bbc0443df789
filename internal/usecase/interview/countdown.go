package interview

import "fmt"

// Countdown is the waiting-room timer, modeled as a small state machine
// with exactly two transitions: Tick (one second elapses) and the single
// expire-to-refetch transition fired when the timer reaches zero. The
// server remains the authority on scheduling; hitting zero triggers one
// re-read of the session rather than trusting the local clock.
type Countdown struct {
	remaining int64 // whole seconds
	refetched bool
}

// NewCountdown starts a countdown from a server-supplied duration.
func NewCountdown(timeUntilStartMs int64) *Countdown {
	secs := timeUntilStartMs / 1000
	if secs < 0 {
		secs = 0
	}
	return &Countdown{remaining: secs}
}

// Tick advances the countdown by one second. It returns true exactly once,
// on the tick that reaches zero, signalling the caller to re-fetch the
// session.
func (c *Countdown) Tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && !c.refetched {
		c.refetched = true
		return true
	}
	return false
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int64 {
	return c.remaining
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	return c.remaining == 0
}

// Display renders the countdown as HH:MM:SS.
func (c *Countdown) Display() string {
	h := c.remaining / 3600
	m := (c.remaining % 3600) / 60
	s := c.remaining % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
