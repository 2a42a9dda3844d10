package timepolicy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyInput   = errors.New("empty date/time input")
	ErrInvalidInput = errors.New("unrecognized date/time format")
)

// Layouts carrying an explicit offset or Z.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Layouts read as wall-clock time in the policy zone.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	LayoutInput,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	LayoutDate,
}

// Parse reads an ISO-8601 timestamp. Strings without an offset are wall-clock
// time in the policy zone, so a formatted date parses back to the same day.
func (p *Policy) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyInput
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInput, s)
}

// ParseOrZero is Parse with failures mapped to the zero time.
func (p *Policy) ParseOrZero(s string) time.Time {
	t, err := p.Parse(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsValidDate reports whether s parses to a real instant.
func (p *Policy) IsValidDate(s string) bool {
	_, err := p.Parse(s)
	return err == nil
}

// EnsureDate returns t, or Now when t is zero.
func (p *Policy) EnsureDate(t time.Time) time.Time {
	if t.IsZero() {
		return p.Now()
	}
	return t
}

// EnsureDateString parses s, falling back to Now on any failure.
func (p *Policy) EnsureDateString(s string) time.Time {
	t, err := p.Parse(s)
	if err != nil {
		return p.Now()
	}
	return t
}

// ParseMonth reads "YYYY-MM" into a year and zero-based month index. An empty
// string selects the current month.
func (p *Policy) ParseMonth(s string) (year, monthIndex int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := p.Now()
		return now.Year(), int(now.Month()) - 1, nil
	}
	t, err := time.ParseInLocation(LayoutMonth, s, p.loc)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return t.Year(), int(t.Month()) - 1, nil
}
