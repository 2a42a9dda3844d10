package timepolicy

import "time"

// IsSameDay reports whether a and b fall on the same civil day.
func (p *Policy) IsSameDay(a, b time.Time) bool {
	return p.ToMidnight(a).Equal(p.ToMidnight(b))
}

// IsToday reports whether t falls on the current civil day.
func (p *Policy) IsToday(t time.Time) bool {
	return p.IsSameDay(t, p.Now())
}

// IsPast reports whether t's civil day is before today.
func (p *Policy) IsPast(t time.Time) bool {
	return p.ToMidnight(t).Before(p.ToMidnight(p.Now()))
}

// IsFuture reports whether t's civil day is after today.
func (p *Policy) IsFuture(t time.Time) bool {
	return p.ToMidnight(t).After(p.ToMidnight(p.Now()))
}

// DaysDiff returns the number of civil days between a and b, ignoring order.
func (p *Policy) DaysDiff(a, b time.Time) int {
	d := civilDayNumber(p.ToZoned(a)) - civilDayNumber(p.ToZoned(b))
	if d < 0 {
		return -d
	}
	return d
}

// DaysUntil returns the signed number of civil days from today to t;
// negative when t's day has passed.
func (p *Policy) DaysUntil(t time.Time) int {
	return civilDayNumber(p.ToZoned(t)) - civilDayNumber(p.Now())
}

// civilDayNumber maps a local calendar date onto a day count. The date is
// re-anchored in UTC so DST transitions do not shorten or lengthen days.
func civilDayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
