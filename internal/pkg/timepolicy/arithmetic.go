package timepolicy

import "time"

// AddDays shifts t by n civil days, keeping its wall-clock time. Crossing a
// DST transition lands on the intended date rather than n*24h later.
func (p *Policy) AddDays(t time.Time, n int) time.Time {
	z := p.ToZoned(t)
	y, m, d := z.Date()
	return time.Date(y, m, d+n, z.Hour(), z.Minute(), z.Second(), z.Nanosecond(), p.loc)
}

// AddMonths shifts t by n civil months. When the day of month does not exist
// in the target month it is clamped to that month's last day, so Jan 31 plus
// one month is the last day of February, never a day in March.
func (p *Policy) AddMonths(t time.Time, n int) time.Time {
	z := p.ToZoned(t)
	y, m, d := z.Date()

	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	ty, tm, _ := first.Date()
	if last := p.DaysInMonth(ty, int(tm)-1); d > last {
		d = last
	}
	return time.Date(ty, tm, d, z.Hour(), z.Minute(), z.Second(), z.Nanosecond(), p.loc)
}
