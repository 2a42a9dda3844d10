package timepolicy

import "time"

// Calendar helpers take zero-based month indexes (0 = January). Out-of-range
// indexes roll into the neighbouring years the way time.Date normalizes them.

// FirstWeekdayOfMonth returns the weekday (0 = Sunday) of the month's first day.
func (p *Policy) FirstWeekdayOfMonth(year, monthIndex int) int {
	return int(time.Date(year, time.Month(monthIndex+1), 1, 12, 0, 0, 0, p.loc).Weekday())
}

// DaysInMonth returns the month length, read as day zero of the following month.
func (p *Policy) DaysInMonth(year, monthIndex int) int {
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthName returns the English month name.
func (p *Policy) MonthName(monthIndex int) string {
	return time.Month(((monthIndex%12)+12)%12 + 1).String()
}

// WeekStart returns midnight of the Sunday on or before t's civil day.
func (p *Policy) WeekStart(t time.Time) time.Time {
	z := p.ToZoned(t)
	y, m, d := z.Date()
	return time.Date(y, m, d-int(z.Weekday()), 0, 0, 0, 0, p.loc)
}

// WeekEnd returns midnight of the Saturday closing t's week.
func (p *Policy) WeekEnd(t time.Time) time.Time {
	y, m, d := p.WeekStart(t).Date()
	return time.Date(y, m, d+6, 0, 0, 0, 0, p.loc)
}

// MonthStart returns midnight of the month's first day.
func (p *Policy) MonthStart(year, monthIndex int) time.Time {
	return time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, p.loc)
}

// MonthEnd returns 23:59:59.999 of the month's last day.
func (p *Policy) MonthEnd(year, monthIndex int) time.Time {
	return time.Date(year, time.Month(monthIndex+2), 0, 23, 59, 59, int(999*time.Millisecond), p.loc)
}
