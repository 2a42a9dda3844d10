package dashboard

import (
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
)

// DashboardResponse for GET /my-dashboard
type DashboardResponse struct {
	Greeting string                `json:"greeting"`
	Now      calendar.TimeSnapshot `json:"now"`

	// Attendance is nil when the HRIS backend could not be reached;
	// AttendanceError then explains why.
	Attendance      *attendance.WeekSummary `json:"attendance"`
	AttendanceError string                  `json:"attendance_error,omitempty"`

	Tasks         task.MyTaskSummary  `json:"tasks"`
	UpcomingTasks []task.TaskResponse `json:"upcoming_tasks"`
}
