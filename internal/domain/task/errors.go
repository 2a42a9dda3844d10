package task

import "errors"

// Task domain errors
var (
	ErrTaskNotFound              = errors.New("task not found")
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrNotTaskAssignee           = errors.New("task is not assigned to you")
	ErrTaskAlreadyCompleted      = errors.New("task is already completed")
	ErrSubmissionAlreadyReviewed = errors.New("submission has already been reviewed")
	ErrDeadlineInPast            = errors.New("deadline must not be before today")
	ErrAssigneeNotFound          = errors.New("assignee not found")
	ErrInvalidMonth              = errors.New("month must be in YYYY-MM format")
)
