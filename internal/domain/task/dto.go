package task

import (
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

var (
	statusValues   = []string{"todo", "in_progress", "submitted", "completed", "rejected"}
	priorityValues = []string{"low", "medium", "high"}
	sortFields     = []string{"deadline", "priority", "created_at", "title", "progress"}
	sortOrders     = []string{"asc", "desc"}
)

func validatePaging(errs *validator.ValidationErrors, page, limit *int) {
	if *page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if *page == 0 {
		*page = defaultPage
	}
	if *limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *limit > maxLimit {
		errs.Add("limit", "limit must not exceed 100")
	}
}

func validateSort(errs *validator.ValidationErrors, sortBy, sortOrder *string) {
	if *sortBy != "" {
		if !validator.IsInSlice(*sortBy, sortFields) {
			errs.Add("sort_by", "sort_by must be one of: deadline, priority, created_at, title, progress")
		}
	} else {
		*sortBy = "deadline"
	}

	if *sortOrder != "" {
		*sortOrder = strings.ToLower(*sortOrder)
		if !validator.IsInSlice(*sortOrder, sortOrders) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		*sortOrder = "asc" // Nearest deadline first
	}
}

func validateStatusAndPriority(errs *validator.ValidationErrors, status, priority string) {
	if status != "" && !validator.IsInSlice(status, statusValues) {
		errs.Add("status", "status must be one of: todo, in_progress, submitted, completed, rejected")
	}
	if priority != "" && !validator.IsInSlice(priority, priorityValues) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
}

// MyTaskFilter for GET /my-tasks
type MyTaskFilter struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Overdue  *bool  `json:"overdue,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // deadline, priority, created_at, title, progress
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *MyTaskFilter) Validate() error {
	var errs validator.ValidationErrors
	validatePaging(&errs, &f.Page, &f.Limit)
	validateStatusAndPriority(&errs, f.Status, f.Priority)
	validateSort(&errs, &f.SortBy, &f.SortOrder)
	return errs.Err()
}

// TaskFilter for GET /tasks (manager)
type TaskFilter struct {
	AssigneeID string `json:"assignee_id,omitempty"`
	Search     string `json:"search,omitempty"`
	Status     string `json:"status,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Overdue    *bool  `json:"overdue,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors
	validatePaging(&errs, &f.Page, &f.Limit)
	validateStatusAndPriority(&errs, f.Status, f.Priority)
	validateSort(&errs, &f.SortBy, &f.SortOrder)
	return errs.Err()
}

// SubmissionFilter for GET /tasks/submissions
type SubmissionFilter struct {
	TaskID     string `json:"task_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Status     string `json:"status,omitempty"` // pending, approved, rejected

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SubmissionFilter) Validate() error {
	var errs validator.ValidationErrors
	validatePaging(&errs, &f.Page, &f.Limit)
	if f.Status != "" && !validator.IsInSlice(f.Status, []string{"pending", "approved", "rejected"}) {
		errs.Add("status", "status must be one of: pending, approved, rejected")
	}
	return errs.Err()
}

// AssignTaskRequest for POST /tasks
type AssignTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id"`
	Priority    string `json:"priority"`
	// Deadline is a datetime-local value (YYYY-MM-DDTHH:MM) read in the portal
	// timezone, or an RFC 3339 timestamp
	Deadline string `json:"deadline"`
}

func (r *AssignTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if len(r.Description) > 2000 {
		errs.Add("description", "description must not exceed 2000 characters")
	}
	if validator.IsEmpty(r.AssigneeID) {
		errs.Add("assignee_id", "assignee_id is required")
	}
	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	} else if !validator.IsInSlice(r.Priority, priorityValues) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	if validator.IsEmpty(r.Deadline) {
		errs.Add("deadline", "deadline is required")
	} else if _, ok := validator.IsValidDateTime(r.Deadline); !ok && !validator.IsValidLocalDateTime(r.Deadline) {
		errs.Add("deadline", "deadline must be in YYYY-MM-DDTHH:MM or ISO8601 format")
	}

	return errs.Err()
}

// SubmitProgressRequest for POST /my-tasks/{id}/submissions
type SubmitProgressRequest struct {
	TaskID   string `json:"-"`
	Progress *int   `json:"progress"`
	Note     string `json:"note"`
}

func (r *SubmitProgressRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Progress == nil {
		errs.Add("progress", "progress is required")
	} else if !validator.IsInRange(*r.Progress, 0, 100) {
		errs.Add("progress", "progress must be between 0 and 100")
	}
	if len(r.Note) > 1000 {
		errs.Add("note", "note must not exceed 1000 characters")
	}

	return errs.Err()
}

const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// ReviewSubmissionRequest for POST /tasks/submissions/{id}/review
type ReviewSubmissionRequest struct {
	SubmissionID string  `json:"-"`
	Action       string  `json:"action"` // approve, reject
	Note         *string `json:"note,omitempty"`
}

func (r *ReviewSubmissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Action, []string{ReviewActionApprove, ReviewActionReject}) {
		errs.Add("action", "action must be one of: approve, reject")
	}
	if r.Action == ReviewActionReject && (r.Note == nil || validator.IsEmpty(*r.Note)) {
		errs.Add("note", "note is required when rejecting a submission")
	}

	return errs.Err()
}

// TaskResponse is a task with its deadline projected into the portal timezone
type TaskResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssigneeID     string `json:"assignee_id"`
	AssigneeName   string `json:"assignee_name"`
	AssignedByID   string `json:"assigned_by_id"`
	AssignedByName string `json:"assigned_by_name"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`

	Deadline        string `json:"deadline"`
	DeadlineDate    string `json:"deadline_date"`
	DeadlineTime    string `json:"deadline_time"`
	DeadlineDisplay string `json:"deadline_display"`
	DeadlineInput   string `json:"deadline_input"`
	IsOverdue       bool   `json:"is_overdue"`
	IsDueToday      bool   `json:"is_due_today"`
	DaysLeft        int    `json:"days_left"`
	DueLabel        string `json:"due_label"`

	CompletedAt *string `json:"completed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`

	LatestSubmission *SubmissionResponse `json:"latest_submission,omitempty"`
}

type ListTaskResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Showing    string         `json:"showing"`
	Tasks      []TaskResponse `json:"tasks"`
}

type SubmissionResponse struct {
	ID               string  `json:"id"`
	TaskID           string  `json:"task_id"`
	TaskTitle        string  `json:"task_title"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Note             string  `json:"note"`
	Progress         int     `json:"progress"`
	SubmittedAt      string  `json:"submitted_at"`
	SubmittedDate    string  `json:"submitted_date"`
	SubmittedTime    string  `json:"submitted_time"`
	SubmittedDisplay string  `json:"submitted_display"`
	SubmittedLate    bool    `json:"submitted_late"`
	Status           string  `json:"status"`
	ReviewNote       *string `json:"review_note,omitempty"`
	ReviewedAt       *string `json:"reviewed_at,omitempty"`
	ReviewerID       *string `json:"reviewer_id,omitempty"`
}

type ListSubmissionResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// MyTaskSummary counts the caller's tasks
type MyTaskSummary struct {
	Total        int           `json:"total"`
	Todo         int           `json:"todo"`
	InProgress   int           `json:"in_progress"`
	Submitted    int           `json:"submitted"`
	Completed    int           `json:"completed"`
	Rejected     int           `json:"rejected"`
	Overdue      int           `json:"overdue"`
	DueToday     int           `json:"due_today"`
	DueThisWeek  int           `json:"due_this_week"`
	NextDeadline *TaskResponse `json:"next_deadline,omitempty"`
}

type StatusCounts struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Submitted  int `json:"submitted"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
}

// Add counts one task under its status
func (c *StatusCounts) Add(s Status) {
	c.Total++
	switch s {
	case StatusTodo:
		c.Todo++
	case StatusInProgress:
		c.InProgress++
	case StatusSubmitted:
		c.Submitted++
	case StatusCompleted:
		c.Completed++
	case StatusRejected:
		c.Rejected++
	}
}

// AnalyticsResponse for GET /tasks/analytics?month=YYYY-MM
type AnalyticsResponse struct {
	Month               string             `json:"month"`
	MonthName           string             `json:"month_name"`
	Year                int                `json:"year"`
	Totals              StatusCounts       `json:"totals"`
	CompletionRate      float64            `json:"completion_rate"`
	CompletionRateLabel string             `json:"completion_rate_label"`
	OverdueCount        int                `json:"overdue_count"`
	OnTimeCompleted     int                `json:"on_time_completed"`
	OnTimeRate          float64            `json:"on_time_rate"`
	Employees           []EmployeeProgress `json:"employees"`
	WeeklyTrend         []WeeklyTrendPoint `json:"weekly_trend"`
}

type EmployeeProgress struct {
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	Assigned        int     `json:"assigned"`
	Completed       int     `json:"completed"`
	Overdue         int     `json:"overdue"`
	AverageProgress float64 `json:"average_progress"`
	CompletionRate  float64 `json:"completion_rate"`
}

type WeeklyTrendPoint struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Label     string `json:"label"`
	Due       int    `json:"due"`
	Completed int    `json:"completed"`
}
