// Package clock provides a UTC clock whose readings never go backwards
// within a process.
package clock

import "time"

// Clock anchors on a wall time taken at construction and advances it with
// the monotonic clock, so wall clock steps do not leak into readings.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNowFunc replaces the time source, mainly for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Clock anchored at the current time.
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.start = c.now()
	return c
}

// Now returns the current UTC time.
func (c *Clock) Now() time.Time {
	elapsed := c.now().Sub(c.start)
	if elapsed < 0 {
		elapsed = 0
	}
	return c.start.Add(elapsed).UTC()
}

// Unix returns t as fractional seconds since the epoch.
func Unix(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
