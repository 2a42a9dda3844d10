package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrInvalidDateRange    = errors.New("end_date must not be before start_date")
	ErrDateRangeTooLong    = errors.New("date range must not exceed 62 days")
	ErrUpstreamUnavailable = errors.New("attendance service is unavailable")
)
