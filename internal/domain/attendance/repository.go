package attendance

import "context"

// ListQuery is forwarded to the HRIS backend as query parameters
type ListQuery struct {
	EmployeeID string
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	Page       int
	Limit      int
}

type ListResult struct {
	Attendances []Attendance `json:"attendances"`
	TotalCount  int64        `json:"total_count"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"total_pages"`
}

// AttendanceRepository reads attendance records from the HRIS backend on
// behalf of the caller whose access token is in ctx.
type AttendanceRepository interface {
	// ListMine lists the caller's own records
	ListMine(ctx context.Context, query ListQuery) (ListResult, error)

	// List lists records across the company (manager/owner)
	List(ctx context.Context, query ListQuery) (ListResult, error)

	GetByID(ctx context.Context, id string) (Attendance, error)
}
