// Package timepolicy projects instants into one configured civil timezone.
//
// Every calendar-day decision in the portal (today, past, future, week and
// month boundaries, deadline day counts) goes through a Policy so that
// attendance, task and calendar views agree on which day an event belongs to.
// A zero time.Time stands for a missing input.
package timepolicy

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultZone is the zone used when configuration does not name one.
const DefaultZone = "America/New_York"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Policy is safe for concurrent use; it holds no mutable state.
type Policy struct {
	zone  string
	loc   *time.Location
	clock Clock
}

type Option func(*Policy)

// WithClock overrides the source of "now".
func WithClock(c Clock) Option {
	return func(p *Policy) {
		if c != nil {
			p.clock = c
		}
	}
}

// New loads zone from the timezone database and returns a Policy anchored to it.
func New(zone string, opts ...Option) (*Policy, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		zone = DefaultZone
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", zone, err)
	}

	p := &Policy{
		zone:  zone,
		loc:   loc,
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustNew is like New but panics on an unknown zone.
func MustNew(zone string, opts ...Option) *Policy {
	p, err := New(zone, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Zone returns the IANA identifier the policy was built with.
func (p *Policy) Zone() string { return p.zone }

// Location returns the policy location.
func (p *Policy) Location() *time.Location { return p.loc }

// Now returns the current instant in the policy zone.
func (p *Policy) Now() time.Time {
	return p.clock.Now().In(p.loc)
}

// ToZoned returns t in the policy zone. A zero t falls back to Now.
func (p *Policy) ToZoned(t time.Time) time.Time {
	if t.IsZero() {
		return p.Now()
	}
	return t.In(p.loc)
}

// ToMidnight returns 00:00:00.000 local time of t's civil day.
func (p *Policy) ToMidnight(t time.Time) time.Time {
	y, m, d := p.ToZoned(t).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.loc)
}

// ToEndOfDay returns 23:59:59.999 local time of t's civil day.
func (p *Policy) ToEndOfDay(t time.Time) time.Time {
	y, m, d := p.ToZoned(t).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), p.loc)
}
