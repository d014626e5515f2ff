// Package clock supplies the time source the hourglass ticks against.
package clock

import (
	"sync"
	"time"
)

//go:generate mockgen -destination=mock/mock_clock.go -package=mockclock -source=clock.go

// Clock returns the current instant. Real clocks must be monotonic.
type Clock interface {
	Now() time.Time
}

// Real reads the wall clock, which carries Go's monotonic reading
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is deterministic and test-friendly.
type Fake struct {
	mu sync.Mutex
	t  time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{t: start}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the new instant
func (c *Fake) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}
