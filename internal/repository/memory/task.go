// Package memory holds repositories backed by process memory. The portal
// owns no database; task data is demo data rebuilt on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/google/uuid"
)

type taskRepository struct {
	mu          sync.RWMutex
	tasks       map[string]task.Task
	submissions map[string]task.Submission
	now         func() time.Time
}

func NewTaskRepository() task.TaskRepository {
	return &taskRepository{
		tasks:       make(map[string]task.Task),
		submissions: make(map[string]task.Submission),
		now:         time.Now,
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = newID()
	}
	if _, exists := r.tasks[t.ID]; exists {
		return task.Task{}, fmt.Errorf("task %s already exists", t.ID)
	}
	now := r.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	r.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	t.UpdatedAt = r.now()
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

// List implements task.TaskRepository.
func (r *taskRepository) List(ctx context.Context, assigneeID string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if assigneeID != "" && t.AssigneeID != assigneeID {
			continue
		}
		result = append(result, cloneTask(t))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CreateSubmission implements task.TaskRepository.
func (r *taskRepository) CreateSubmission(ctx context.Context, s task.Submission) (task.Submission, error) {
	if err := ctx.Err(); err != nil {
		return task.Submission{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[s.TaskID]; !ok {
		return task.Submission{}, task.ErrTaskNotFound
	}
	if s.ID == "" {
		s.ID = newID()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = r.now()
	}
	if s.Status == "" {
		s.Status = task.SubmissionPending
	}

	r.submissions[s.ID] = cloneSubmission(s)
	return cloneSubmission(s), nil
}

// GetSubmissionByID implements task.TaskRepository.
func (r *taskRepository) GetSubmissionByID(ctx context.Context, id string) (task.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.submissions[id]
	if !ok {
		return task.Submission{}, task.ErrSubmissionNotFound
	}
	return cloneSubmission(s), nil
}

// UpdateSubmission implements task.TaskRepository.
func (r *taskRepository) UpdateSubmission(ctx context.Context, s task.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[s.ID]; !ok {
		return task.ErrSubmissionNotFound
	}
	r.submissions[s.ID] = cloneSubmission(s)
	return nil
}

// ListSubmissions implements task.TaskRepository. Newest first.
func (r *taskRepository) ListSubmissions(ctx context.Context, query task.SubmissionQuery) ([]task.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]task.Submission, 0)
	for _, s := range r.submissions {
		if query.TaskID != "" && s.TaskID != query.TaskID {
			continue
		}
		if query.EmployeeID != "" && s.EmployeeID != query.EmployeeID {
			continue
		}
		if query.Status != "" && s.Status != query.Status {
			continue
		}
		result = append(result, cloneSubmission(s))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.After(result[j].SubmittedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// Replace implements task.TaskRepository.
func (r *taskRepository) Replace(ctx context.Context, tasks []task.Task, submissions []task.Submission) error {
	nextTasks := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = newID()
		}
		nextTasks[t.ID] = cloneTask(t)
	}

	nextSubmissions := make(map[string]task.Submission, len(submissions))
	for _, s := range submissions {
		if _, ok := nextTasks[s.TaskID]; !ok {
			return fmt.Errorf("submission %s references unknown task %s: %w", s.ID, s.TaskID, task.ErrTaskNotFound)
		}
		if s.ID == "" {
			s.ID = newID()
		}
		nextSubmissions[s.ID] = cloneSubmission(s)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = nextTasks
	r.submissions = nextSubmissions
	return nil
}

func cloneTask(t task.Task) task.Task {
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		t.CompletedAt = &completedAt
	}
	return t
}

func cloneSubmission(s task.Submission) task.Submission {
	if s.ReviewNote != nil {
		note := *s.ReviewNote
		s.ReviewNote = &note
	}
	if s.ReviewedAt != nil {
		reviewedAt := *s.ReviewedAt
		s.ReviewedAt = &reviewedAt
	}
	if s.ReviewerID != nil {
		reviewerID := *s.ReviewerID
		s.ReviewerID = &reviewerID
	}
	return s
}
