package attendance

import "github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"

// Attendance is a record as served by the HRIS backend. Timestamps stay raw
// until a timepolicy.Policy resolves them.
type Attendance struct {
	ID               string             `json:"id"`
	EmployeeID       string             `json:"employee_id"`
	EmployeeName     string             `json:"employee_name"`
	EmployeePosition *string            `json:"employee_position,omitempty"`
	Date             string             `json:"date"`
	ClockInTime      timepolicy.Instant `json:"clock_in_time"`
	ClockOutTime     timepolicy.Instant `json:"clock_out_time"`
	WorkingHours     *float64           `json:"working_hours,omitempty"`
	Status           string             `json:"status"`
	IsLate           *bool              `json:"is_late,omitempty"`
	LateMinutes      *int               `json:"late_minutes,omitempty"`
	Breaks           []Break            `json:"breaks,omitempty"`
}

type Break struct {
	Type      string             `json:"type"`
	StartTime timepolicy.Instant `json:"start_time"`
	EndTime   timepolicy.Instant `json:"end_time"`
}

// Late reports the upstream late flag, treating missing as on time
func (a Attendance) Late() bool {
	return a.IsLate != nil && *a.IsLate
}

func (a Attendance) LateMinutesOrZero() int {
	if a.LateMinutes == nil {
		return 0
	}
	return *a.LateMinutes
}
