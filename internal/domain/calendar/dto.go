package calendar

import "github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"

// TimeSnapshot describes one instant in the portal timezone
type TimeSnapshot struct {
	Now           string                `json:"now"`
	UTC           string                `json:"utc"`
	UnixMillis    int64                 `json:"unix_millis"`
	Date          string                `json:"date"`
	Time          string                `json:"time"`
	DisplayDate   string                `json:"display_date"`
	DayName       string                `json:"day_name"`
	MonthName     string                `json:"month_name"`
	WeekStart     string                `json:"week_start"`
	WeekEnd       string                `json:"week_end"`
	Timezone      timepolicy.Descriptor `json:"timezone"`
	OffsetMinutes int                   `json:"offset_minutes"`
}

// ConversionResponse for GET /time/convert
type ConversionResponse struct {
	Input         string                `json:"input"`
	UTC           string                `json:"utc"`
	Zoned         string                `json:"zoned"`
	Date          string                `json:"date"`
	Time          string                `json:"time"`
	InputValue    string                `json:"input_value"`
	DisplayDate   string                `json:"display_date"`
	DayName       string                `json:"day_name"`
	Midnight      string                `json:"midnight"`
	EndOfDay      string                `json:"end_of_day"`
	WeekStart     string                `json:"week_start"`
	WeekEnd       string                `json:"week_end"`
	IsToday       bool                  `json:"is_today"`
	IsPast        bool                  `json:"is_past"`
	IsFuture      bool                  `json:"is_future"`
	DaysFromToday int                   `json:"days_from_today"`
	Timezone      timepolicy.Descriptor `json:"timezone"`
}

// MonthResponse is a Sunday-first month grid
type MonthResponse struct {
	Month         string   `json:"month"` // YYYY-MM
	Year          int      `json:"year"`
	MonthIndex    int      `json:"month_index"` // 0 = January
	MonthName     string   `json:"month_name"`
	FirstWeekday  int      `json:"first_weekday"` // 0 = Sunday
	DaysInMonth   int      `json:"days_in_month"`
	LeadingBlanks int      `json:"leading_blanks"`
	MonthStart    string   `json:"month_start"`
	MonthEnd      string   `json:"month_end"`
	PrevMonth     string   `json:"prev_month"`
	NextMonth     string   `json:"next_month"`
	Today         string   `json:"today"`
	Weekdays      []string `json:"weekdays"`
	Weeks         []Week   `json:"weeks"`
	TasksDue      int      `json:"tasks_due"`
}

// Week has exactly 7 slots; nil slots pad the month's first and last week
type Week struct {
	Days []*DayCell `json:"days"`
}

type DayCell struct {
	Date          string      `json:"date"`
	Day           int         `json:"day"`
	Weekday       int         `json:"weekday"`
	IsToday       bool        `json:"is_today"`
	IsPast        bool        `json:"is_past"`
	IsWeekend     bool        `json:"is_weekend"`
	TasksDue      []TaskBadge `json:"tasks_due"`
	TasksDueCount int         `json:"tasks_due_count"`
}

type TaskBadge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	AssigneeName string `json:"assignee_name,omitempty"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	DeadlineTime string `json:"deadline_time"`
	IsOverdue    bool   `json:"is_overdue"`
}
