package attendance

import (
	"context"
	"time"
)

// AttendanceService projects upstream attendance records through the time policy
type AttendanceService interface {
	// GetHistory builds the time-and-breaks history for a date range (default current week)
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// GetDebug shows every projection of a record's timestamps
	GetDebug(ctx context.Context, id string) (DebugResponse, error)

	// GetWeekSummary summarizes the caller's week containing reference
	GetWeekSummary(ctx context.Context, reference time.Time) (WeekSummary, error)
}
