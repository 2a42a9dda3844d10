package timepolicy

import (
	"fmt"
	"math"
	"time"
)

// Layouts of the strings handed to the UI.
const (
	LayoutDate        = "2006-01-02"
	LayoutTime        = "15:04"
	LayoutInput       = "2006-01-02T15:04"
	LayoutDisplayDate = "Mon, Jan 2, 2006"
	LayoutDayName     = "Mon"
	LayoutMonth       = "2006-01"
)

// Placeholders rendered instead of failing on missing input.
const (
	PlaceholderTime  = "--:--"
	PlaceholderHours = "--"
)

// FormatDate renders t as YYYY-MM-DD; a zero t renders today.
func (p *Policy) FormatDate(t time.Time) string {
	return p.ToZoned(t).Format(LayoutDate)
}

// FormatTime renders t as 24-hour HH:MM, or "--:--" when t is zero.
func (p *Policy) FormatTime(t time.Time) string {
	if t.IsZero() {
		return PlaceholderTime
	}
	return t.In(p.loc).Format(LayoutTime)
}

// FormatForInput renders the value of a datetime-local input field.
func (p *Policy) FormatForInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(p.loc).Format(LayoutInput)
}

// FormatDisplayDate renders e.g. "Mon, Jan 15, 2024".
func (p *Policy) FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(p.loc).Format(LayoutDisplayDate)
}

// DayName returns the three-letter weekday abbreviation.
func (p *Policy) DayName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(p.loc).Format(LayoutDayName)
}

// FormatHours renders a fractional hour count as "8h 30m", rounded to the
// nearest minute. Zero, negative and NaN counts render "--".
func FormatHours(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return PlaceholderHours
	}
	minutes := int64(math.Round(hours * 60))
	if minutes == 0 {
		return "0h 0m"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDuration is FormatHours for a time.Duration.
func FormatDuration(d time.Duration) string {
	return FormatHours(d.Hours())
}

// FormatHours is exposed on Policy for callers that only hold a Policy.
func (p *Policy) FormatHours(hours float64) string {
	return FormatHours(hours)
}
