package attendance

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

// HistoryFilter for GET /attendance/history
type HistoryFilter struct {
	StartDate  string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    string `json:"end_date,omitempty"`   // YYYY-MM-DD
	EmployeeID string `json:"employee_id,omitempty"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	return errs.Err()
}

type HistoryResponse struct {
	EmployeeID   string                `json:"employee_id,omitempty"`
	EmployeeName string                `json:"employee_name,omitempty"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	RangeLabel   string                `json:"range_label"`
	Timezone     timepolicy.Descriptor `json:"timezone"`
	Days         []HistoryDay          `json:"days"`
	Totals       HistoryTotals         `json:"totals"`
}

// HistoryDay is one civil day in the policy zone
type HistoryDay struct {
	AttendanceIDs []string    `json:"attendance_ids"`
	Date          string      `json:"date"`
	DayName       string      `json:"day_name"`
	DisplayDate   string      `json:"display_date"`
	ClockIn       string      `json:"clock_in"`
	ClockOut      string      `json:"clock_out"`
	Breaks        []BreakView `json:"breaks"`
	TotalBreak    string      `json:"total_break"`
	Worked        string      `json:"worked"`
	WorkedMinutes int64       `json:"worked_minutes"`
	IsToday       bool        `json:"is_today"`
	InProgress    bool        `json:"in_progress"`
	Status        string      `json:"status"`
	IsLate        bool        `json:"is_late"`
	LateMinutes   int         `json:"late_minutes"`
}

type BreakView struct {
	Type       string `json:"type"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Duration   string `json:"duration"`
	InProgress bool   `json:"in_progress"`
}

type HistoryTotals struct {
	WorkedHours   string `json:"worked_hours"`
	WorkedMinutes int64  `json:"worked_minutes"`
	TotalBreak    string `json:"total_break"`
	DaysPresent   int    `json:"days_present"`
	LateDays      int    `json:"late_days"`
}

// DebugResponse for GET /attendance/{id}/debug
type DebugResponse struct {
	AttendanceID string                `json:"attendance_id"`
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	UpstreamDate string                `json:"upstream_date"`
	ZonedDate    string                `json:"zoned_date"`
	DateMismatch bool                  `json:"date_mismatch"`
	ClockIn      TimestampDebug        `json:"clock_in"`
	ClockOut     TimestampDebug        `json:"clock_out"`
	Breaks       []BreakDebug          `json:"breaks"`
	Timezone     timepolicy.Descriptor `json:"timezone"`
	ServerNow    string                `json:"server_now"`
}

type TimestampDebug struct {
	Raw         string `json:"raw"`
	Valid       bool   `json:"valid"`
	UTC         string `json:"utc,omitempty"`
	Zoned       string `json:"zoned,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time"`
	DisplayDate string `json:"display_date,omitempty"`
	IsToday     bool   `json:"is_today"`
}

type BreakDebug struct {
	Type  string         `json:"type"`
	Start TimestampDebug `json:"start"`
	End   TimestampDebug `json:"end"`
}

// WeekSummary feeds the employee dashboard
type WeekSummary struct {
	WeekStart     string      `json:"week_start"`
	WeekEnd       string      `json:"week_end"`
	RangeLabel    string      `json:"range_label"`
	Days          []WeekDay   `json:"days"`
	Today         *HistoryDay `json:"today,omitempty"`
	DaysPresent   int         `json:"days_present"`
	LateDays      int         `json:"late_days"`
	WorkedHours   string      `json:"worked_hours"`
	WorkedMinutes int64       `json:"worked_minutes"`
}

type WeekDay struct {
	Date          string `json:"date"`
	DayName       string `json:"day_name"`
	IsToday       bool   `json:"is_today"`
	IsFuture      bool   `json:"is_future"`
	Present       bool   `json:"present"`
	Worked        string `json:"worked"`
	WorkedMinutes int64  `json:"worked_minutes"`
}
