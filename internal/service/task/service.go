package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

// Publisher pushes live events to an employee's open screens
type Publisher interface {
	Publish(key string, event sse.Event)
}

type Option func(*TaskServiceImpl)

// WithProvisioner gives employees without tasks a demo set on first visit
func WithProvisioner(p task.DemoProvisioner) Option {
	return func(s *TaskServiceImpl) { s.provisioner = p }
}

func WithPublisher(p Publisher) Option {
	return func(s *TaskServiceImpl) { s.publisher = p }
}

type TaskServiceImpl struct {
	policy      *timepolicy.Policy
	repo        task.TaskRepository
	directory   task.EmployeeDirectory
	provisioner task.DemoProvisioner
	publisher   Publisher
}

func NewTaskService(policy *timepolicy.Policy, repo task.TaskRepository, directory task.EmployeeDirectory, opts ...Option) task.TaskService {
	s := &TaskServiceImpl{
		policy:    policy,
		repo:      repo,
		directory: directory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMyTasks implements task.TaskService.
func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, filter task.MyTaskFilter) (task.ListTaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}

	claims, err := jwt.EmployeeClaimsFromContext(ctx)
	if err != nil {
		return task.ListTaskResponse{}, err
	}

	tasks, err := s.myTasks(ctx, claims)
	if err != nil {
		return task.ListTaskResponse{}, err
	}

	return s.listResponse(ctx, tasks, taskQuery{
		search:    filter.Search,
		status:    filter.Status,
		priority:  filter.Priority,
		overdue:   filter.Overdue,
		sortBy:    filter.SortBy,
		sortOrder: filter.SortOrder,
		page:      filter.Page,
		limit:     filter.Limit,
	})
}

// GetMyTask implements task.TaskService.
func (s *TaskServiceImpl) GetMyTask(ctx context.Context, id string) (task.TaskResponse, error) {
	claims, err := jwt.EmployeeClaimsFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	// Someone else's task is reported as missing
	if t.AssigneeID != claims.EmployeeID {
		return task.TaskResponse{}, task.ErrTaskNotFound
	}

	resp := s.toTaskResponse(t)
	if latest, ok, err := s.latestSubmission(ctx, t); err != nil {
		return task.TaskResponse{}, err
	} else if ok {
		resp.LatestSubmission = &latest
	}
	return resp, nil
}

// SubmitProgress implements task.TaskService.
func (s *TaskServiceImpl) SubmitProgress(ctx context.Context, req task.SubmitProgressRequest) (task.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return task.SubmissionResponse{}, err
	}

	claims, err := jwt.EmployeeClaimsFromContext(ctx)
	if err != nil {
		return task.SubmissionResponse{}, err
	}
	if !claims.Can(user.PermissionTaskSubmit) {
		return task.SubmissionResponse{}, user.ErrInsufficientPermissions
	}

	t, err := s.repo.GetByID(ctx, req.TaskID)
	if err != nil {
		return task.SubmissionResponse{}, err
	}
	if t.AssigneeID != claims.EmployeeID {
		return task.SubmissionResponse{}, task.ErrNotTaskAssignee
	}
	if t.IsCompleted() {
		return task.SubmissionResponse{}, task.ErrTaskAlreadyCompleted
	}

	now := s.policy.Now()
	submission, err := s.repo.CreateSubmission(ctx, task.Submission{
		TaskID:       t.ID,
		EmployeeID:   claims.EmployeeID,
		EmployeeName: t.AssigneeName,
		Note:         req.Note,
		Progress:     *req.Progress,
		SubmittedAt:  now,
		Status:       task.SubmissionPending,
	})
	if err != nil {
		return task.SubmissionResponse{}, fmt.Errorf("failed to create submission: %w", err)
	}

	t.Progress = *req.Progress
	t.Status = task.StatusInProgress
	if t.Progress == 100 {
		t.Status = task.StatusSubmitted
	}
	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return task.SubmissionResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	return s.toSubmissionResponse(submission, t), nil
}

// GetMySummary implements task.TaskService.
func (s *TaskServiceImpl) GetMySummary(ctx context.Context) (task.MyTaskSummary, error) {
	claims, err := jwt.EmployeeClaimsFromContext(ctx)
	if err != nil {
		return task.MyTaskSummary{}, err
	}

	tasks, err := s.myTasks(ctx, claims)
	if err != nil {
		return task.MyTaskSummary{}, err
	}

	p := s.policy
	now := p.Now()
	weekStart, weekEnd := p.WeekStart(now), p.ToEndOfDay(p.WeekEnd(now))

	var (
		counts  task.StatusCounts
		summary task.MyTaskSummary
		next    *task.Task
	)
	for i := range tasks {
		t := tasks[i]
		counts.Add(t.Status)
		if t.IsCompleted() {
			continue
		}

		switch {
		case p.IsPast(t.Deadline):
			summary.Overdue++
		case p.IsToday(t.Deadline):
			summary.DueToday++
		}
		if !t.Deadline.Before(weekStart) && !t.Deadline.After(weekEnd) {
			summary.DueThisWeek++
		}
		if !p.IsPast(t.Deadline) && (next == nil || t.Deadline.Before(next.Deadline)) {
			next = &tasks[i]
		}
	}

	summary.Total = counts.Total
	summary.Todo = counts.Todo
	summary.InProgress = counts.InProgress
	summary.Submitted = counts.Submitted
	summary.Completed = counts.Completed
	summary.Rejected = counts.Rejected
	if next != nil {
		resp := s.toTaskResponse(*next)
		summary.NextDeadline = &resp
	}
	return summary, nil
}

// AssignTask implements task.TaskService.
func (s *TaskServiceImpl) AssignTask(ctx context.Context, req task.AssignTaskRequest) (task.TaskResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !claims.Can(user.PermissionTaskAssign) {
		return task.TaskResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	p := s.policy
	deadline, err := p.Parse(req.Deadline)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("deadline", "deadline is not a valid date and time")
		return task.TaskResponse{}, errs
	}
	if p.IsPast(deadline) {
		return task.TaskResponse{}, task.ErrDeadlineInPast
	}

	assigneeName, err := s.employeeName(ctx, req.AssigneeID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	assignedByName := claims.Email
	if claims.EmployeeID != "" {
		if name, err := s.employeeName(ctx, claims.EmployeeID); err == nil && name != claims.EmployeeID {
			assignedByName = name
		}
	}

	now := p.Now()
	created, err := s.repo.Create(ctx, task.Task{
		Title:          req.Title,
		Description:    req.Description,
		AssigneeID:     req.AssigneeID,
		AssigneeName:   assigneeName,
		AssignedByID:   claims.EmployeeID,
		AssignedByName: assignedByName,
		Priority:       task.Priority(req.Priority),
		Status:         task.StatusTodo,
		Deadline:       deadline,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	resp := s.toTaskResponse(created)
	s.publish(created.AssigneeID, sse.EventTaskAssigned, resp)
	return resp, nil
}

// ListTasks implements task.TaskService.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter task.TaskFilter) (task.ListTaskResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return task.ListTaskResponse{}, err
	}
	if !claims.Can(user.PermissionTaskViewAll) {
		return task.ListTaskResponse{}, user.ErrInsufficientPermissions
	}

	if err := filter.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}

	tasks, err := s.repo.List(ctx, filter.AssigneeID)
	if err != nil {
		return task.ListTaskResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return s.listResponse(ctx, tasks, taskQuery{
		search:    filter.Search,
		status:    filter.Status,
		priority:  filter.Priority,
		overdue:   filter.Overdue,
		sortBy:    filter.SortBy,
		sortOrder: filter.SortOrder,
		page:      filter.Page,
		limit:     filter.Limit,
	})
}

// ReviewSubmission implements task.TaskService.
func (s *TaskServiceImpl) ReviewSubmission(ctx context.Context, req task.ReviewSubmissionRequest) (task.SubmissionResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return task.SubmissionResponse{}, err
	}
	if !claims.Can(user.PermissionTaskReview) {
		return task.SubmissionResponse{}, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return task.SubmissionResponse{}, err
	}

	submission, err := s.repo.GetSubmissionByID(ctx, req.SubmissionID)
	if err != nil {
		return task.SubmissionResponse{}, err
	}
	if submission.Status != task.SubmissionPending {
		return task.SubmissionResponse{}, task.ErrSubmissionAlreadyReviewed
	}

	t, err := s.repo.GetByID(ctx, submission.TaskID)
	if err != nil {
		return task.SubmissionResponse{}, err
	}
	// An approved task stays completed; leftover pending submissions cannot reopen it
	if t.IsCompleted() {
		return task.SubmissionResponse{}, task.ErrTaskAlreadyCompleted
	}

	now := s.policy.Now()
	reviewer := claims.EmployeeID
	if reviewer == "" {
		reviewer = claims.UserID
	}

	submission.ReviewNote = req.Note
	submission.ReviewedAt = &now
	submission.ReviewerID = &reviewer

	switch req.Action {
	case task.ReviewActionApprove:
		submission.Status = task.SubmissionApproved
		t.Status = task.StatusCompleted
		t.Progress = 100
		t.CompletedAt = &now
	case task.ReviewActionReject:
		submission.Status = task.SubmissionRejected
		t.Status = task.StatusRejected
		t.CompletedAt = nil
	}
	t.UpdatedAt = now

	if err := s.repo.UpdateSubmission(ctx, submission); err != nil {
		return task.SubmissionResponse{}, fmt.Errorf("failed to update submission: %w", err)
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return task.SubmissionResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	resp := s.toSubmissionResponse(submission, t)
	s.publish(submission.EmployeeID, sse.EventSubmissionReviewed, resp)
	return resp, nil
}

// ListSubmissions implements task.TaskService.
func (s *TaskServiceImpl) ListSubmissions(ctx context.Context, filter task.SubmissionFilter) (task.ListSubmissionResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return task.ListSubmissionResponse{}, err
	}
	if !claims.Can(user.PermissionTaskReview) {
		return task.ListSubmissionResponse{}, user.ErrInsufficientPermissions
	}

	if err := filter.Validate(); err != nil {
		return task.ListSubmissionResponse{}, err
	}

	submissions, err := s.repo.ListSubmissions(ctx, task.SubmissionQuery{
		TaskID:     filter.TaskID,
		EmployeeID: filter.EmployeeID,
		Status:     task.SubmissionStatus(filter.Status),
	})
	if err != nil {
		return task.ListSubmissionResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	pageItems, totalPages, showing := paginate(submissions, filter.Page, filter.Limit)

	tasks := make(map[string]task.Task)
	responses := make([]task.SubmissionResponse, 0, len(pageItems))
	for _, sub := range pageItems {
		t, ok := tasks[sub.TaskID]
		if !ok {
			t, err = s.repo.GetByID(ctx, sub.TaskID)
			if err != nil {
				return task.ListSubmissionResponse{}, err
			}
			tasks[sub.TaskID] = t
		}
		responses = append(responses, s.toSubmissionResponse(sub, t))
	}

	return task.ListSubmissionResponse{
		TotalCount:  int64(len(submissions)),
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Submissions: responses,
	}, nil
}

// myTasks lists the caller's tasks, provisioning a demo set on first visit
func (s *TaskServiceImpl) myTasks(ctx context.Context, claims user.Claims) ([]task.Task, error) {
	tasks, err := s.repo.List(ctx, claims.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) > 0 || s.provisioner == nil {
		return tasks, nil
	}

	name, err := s.directory.GetEmployeeName(ctx, claims.EmployeeID)
	if err != nil {
		slog.Debug("employee name unavailable for demo tasks", "employee_id", claims.EmployeeID, "error", err)
		name = ""
	}

	created, err := s.provisioner.ProvisionEmployee(ctx, claims.EmployeeID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to provision demo tasks: %w", err)
	}
	if created == 0 {
		return tasks, nil
	}
	return s.repo.List(ctx, claims.EmployeeID)
}

// employeeName resolves a name through the directory. A backend 404 means
// the employee does not exist; other failures fall back to a name already on
// record, then to the ID.
func (s *TaskServiceImpl) employeeName(ctx context.Context, employeeID string) (string, error) {
	name, err := s.directory.GetEmployeeName(ctx, employeeID)
	if err == nil && name != "" {
		return name, nil
	}

	var apiErr *hrisapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return "", task.ErrAssigneeNotFound
	}
	if err != nil {
		slog.Warn("Employee directory unavailable, using known name", "employee_id", employeeID, "error", err)
	}

	known, listErr := s.repo.List(ctx, employeeID)
	if listErr == nil {
		for _, t := range known {
			if t.AssigneeName != "" {
				return t.AssigneeName, nil
			}
		}
	}
	return employeeID, nil
}

func (s *TaskServiceImpl) publish(employeeID, event string, data interface{}) {
	if s.publisher == nil || employeeID == "" {
		return
	}
	s.publisher.Publish(employeeID, sse.Event{Event: event, Data: data})
}

func (s *TaskServiceImpl) latestSubmission(ctx context.Context, t task.Task) (task.SubmissionResponse, bool, error) {
	subs, err := s.repo.ListSubmissions(ctx, task.SubmissionQuery{TaskID: t.ID})
	if err != nil {
		return task.SubmissionResponse{}, false, fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(subs) == 0 {
		return task.SubmissionResponse{}, false, nil
	}
	// Repository returns newest first
	return s.toSubmissionResponse(subs[0], t), true, nil
}

func formatInstant(p *timepolicy.Policy, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return p.ToZoned(t).Format(time.RFC3339)
}
