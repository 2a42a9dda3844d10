package timepolicy

import "fmt"

// Descriptor summarizes the policy zone for display.
type Descriptor struct {
	Abbreviation   string `json:"abbreviation"`
	DisplayLabel   string `json:"display_label"`
	ZoneIdentifier string `json:"zone_identifier"`
}

// TimezoneAbbreviation returns the abbreviation in effect now, e.g. "EST" or "EDT".
func (p *Policy) TimezoneAbbreviation() string {
	name, _ := p.Now().Zone()
	return name
}

// TimezoneOffsetMinutes returns the current offset in minutes, positive when
// local time is behind UTC (EST is 300).
func (p *Policy) TimezoneOffsetMinutes() int {
	_, offset := p.Now().Zone()
	return -offset / 60
}

// Descriptor returns e.g. {EST, "EST (UTC-5)", "America/New_York"}.
func (p *Policy) Descriptor() Descriptor {
	abbr, offset := p.Now().Zone()
	return Descriptor{
		Abbreviation:   abbr,
		DisplayLabel:   fmt.Sprintf("%s (%s)", abbr, utcOffsetLabel(offset)),
		ZoneIdentifier: p.zone,
	}
}

func utcOffsetLabel(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := (offsetSeconds % 3600) / 60
	if minutes != 0 {
		return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("UTC%s%d", sign, hours)
}
