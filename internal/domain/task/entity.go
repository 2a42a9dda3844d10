package task

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusSubmitted, StatusCompleted, StatusRejected}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities high to low for sorting
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

type Task struct {
	ID             string
	Title          string
	Description    string
	AssigneeID     string
	AssigneeName   string
	AssignedByID   string
	AssignedByName string
	Priority       Priority
	Status         Status
	Progress       int
	Deadline       time.Time
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

type Submission struct {
	ID           string
	TaskID       string
	EmployeeID   string
	EmployeeName string
	Note         string
	Progress     int
	SubmittedAt  time.Time
	Status       SubmissionStatus
	ReviewNote   *string
	ReviewedAt   *time.Time
	ReviewerID   *string
}
