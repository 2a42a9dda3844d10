package task

import "context"

type SubmissionQuery struct {
	TaskID     string
	EmployeeID string
	Status     SubmissionStatus
}

// TaskRepository stores tasks and their progress submissions
type TaskRepository interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, task Task) error

	// List returns tasks assigned to assigneeID, or every task when it is empty
	List(ctx context.Context, assigneeID string) ([]Task, error)

	CreateSubmission(ctx context.Context, submission Submission) (Submission, error)
	GetSubmissionByID(ctx context.Context, id string) (Submission, error)
	UpdateSubmission(ctx context.Context, submission Submission) error
	ListSubmissions(ctx context.Context, query SubmissionQuery) ([]Submission, error)

	// Replace swaps the whole data set (demo reset)
	Replace(ctx context.Context, tasks []Task, submissions []Submission) error
}

// EmployeeDirectory resolves employee names from the HRIS backend
type EmployeeDirectory interface {
	GetEmployeeName(ctx context.Context, id string) (string, error)
}

// DemoProvisioner gives an employee with no tasks a personal demo set
type DemoProvisioner interface {
	ProvisionEmployee(ctx context.Context, employeeID, employeeName string) (int, error)
}
