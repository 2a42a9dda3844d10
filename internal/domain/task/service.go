package task

import "context"

// TaskService covers employee self-service and manager task operations
type TaskService interface {
	// Employee
	ListMyTasks(ctx context.Context, filter MyTaskFilter) (ListTaskResponse, error)
	GetMyTask(ctx context.Context, id string) (TaskResponse, error)
	SubmitProgress(ctx context.Context, req SubmitProgressRequest) (SubmissionResponse, error)
	GetMySummary(ctx context.Context) (MyTaskSummary, error)

	// Manager
	AssignTask(ctx context.Context, req AssignTaskRequest) (TaskResponse, error)
	ListTasks(ctx context.Context, filter TaskFilter) (ListTaskResponse, error)
	ReviewSubmission(ctx context.Context, req ReviewSubmissionRequest) (SubmissionResponse, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) (ListSubmissionResponse, error)
	GetAnalytics(ctx context.Context, month string) (AnalyticsResponse, error)
}
