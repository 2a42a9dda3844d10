package task

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2024-07-15 12:00 EDT
var fixedNow = time.Date(2024, 7, 15, 16, 0, 0, 0, time.UTC)

const (
	managerID  = "0190b1a2-3c4d-7e5f-8a6b-00000000000a"
	employeeID = "0190b1a2-3c4d-7e5f-8a6b-000000000001"
	otherID    = "0190b1a2-3c4d-7e5f-8a6b-000000000002"
)

type fakeDirectory struct {
	names map[string]string
	err   error
}

func (d *fakeDirectory) GetEmployeeName(ctx context.Context, id string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	name, ok := d.names[id]
	if !ok {
		return "", &hrisapi.APIError{StatusCode: http.StatusNotFound, Code: "NOT_FOUND", Message: "employee not found"}
	}
	return name, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events map[string][]sse.Event
}

func (f *fakePublisher) Publish(key string, event sse.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.events == nil {
		f.events = make(map[string][]sse.Event)
	}
	f.events[key] = append(f.events[key], event)
}

type fakeProvisioner struct {
	repo  task.TaskRepository
	calls int
	name  string
}

func (f *fakeProvisioner) ProvisionEmployee(ctx context.Context, id, name string) (int, error) {
	f.calls++
	f.name = name
	_, err := f.repo.Create(ctx, task.Task{
		Title: "Welcome task", AssigneeID: id, AssigneeName: name,
		Priority: task.PriorityLow, Status: task.StatusTodo, Deadline: fixedNow.Add(48 * time.Hour),
	})
	return 1, err
}

type testEnv struct {
	svc       task.TaskService
	repo      task.TaskRepository
	policy    *timepolicy.Policy
	directory *fakeDirectory
	publisher *fakePublisher
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	p, err := timepolicy.New(timepolicy.DefaultZone, timepolicy.WithClock(timepolicy.ClockFunc(func() time.Time { return fixedNow })))
	require.NoError(t, err)

	env := &testEnv{
		repo:   memory.NewTaskRepository(),
		policy: p,
		directory: &fakeDirectory{names: map[string]string{
			managerID:  "Walter Skinner",
			employeeID: "Fox Mulder",
			otherID:    "Dana Scully",
		}},
		publisher: &fakePublisher{},
	}
	opts = append([]Option{WithPublisher(env.publisher)}, opts...)
	env.svc = NewTaskService(p, env.repo, env.directory, opts...)
	return env
}

func ctxAs(t *testing.T, role user.Role, id string) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), user.Claims{UserID: "user-" + id, Email: id + "@example.com", EmployeeID: id, Role: role})
	require.NoError(t, err)
	return ctx
}

// wall builds a New York wall-clock instant
func (e *testEnv) wall(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := e.policy.Parse(s)
	require.NoError(t, err)
	return at
}

func (e *testEnv) seed(t *testing.T, tk task.Task) task.Task {
	t.Helper()
	if tk.Priority == "" {
		tk.Priority = task.PriorityMedium
	}
	if tk.Status == "" {
		tk.Status = task.StatusTodo
	}
	if tk.AssigneeName == "" {
		tk.AssigneeName = e.directory.names[tk.AssigneeID]
	}
	if tk.CreatedAt.IsZero() {
		tk.CreatedAt = fixedNow.Add(-72 * time.Hour)
	}
	created, err := e.repo.Create(context.Background(), tk)
	require.NoError(t, err)
	return created
}

func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestAssignTask(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.AssignTask(ctxAs(t, user.RoleManager, managerID), task.AssignTaskRequest{
		Title:      "  Quarterly report  ",
		AssigneeID: employeeID,
		Deadline:   "2024-07-16T17:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Quarterly report", resp.Title)
	assert.Equal(t, "Fox Mulder", resp.AssigneeName)
	assert.Equal(t, "Walter Skinner", resp.AssignedByName)
	assert.Equal(t, "medium", resp.Priority)
	assert.Equal(t, "todo", resp.Status)
	assert.Equal(t, "2024-07-16T17:00:00-04:00", resp.Deadline)
	assert.Equal(t, "2024-07-16", resp.DeadlineDate)
	assert.Equal(t, "17:00", resp.DeadlineTime)
	assert.Equal(t, "Tue, Jul 16, 2024", resp.DeadlineDisplay)
	assert.Equal(t, "2024-07-16T17:00", resp.DeadlineInput)
	assert.Equal(t, 1, resp.DaysLeft)
	assert.Equal(t, "Due tomorrow", resp.DueLabel)
	assert.False(t, resp.IsOverdue)

	events := env.publisher.events[employeeID]
	require.Len(t, events, 1)
	assert.Equal(t, sse.EventTaskAssigned, events[0].Event)

	stored, err := env.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deadline.Equal(time.Date(2024, 7, 16, 21, 0, 0, 0, time.UTC)))
}

func TestAssignTask_UTCDeadlineLandsOnNewYorkDay(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.AssignTask(ctxAs(t, user.RoleOwner, managerID), task.AssignTaskRequest{
		Title: "Late night deploy", AssigneeID: employeeID, Priority: "high",
		Deadline: "2024-07-20T03:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-19", resp.DeadlineDate)
	assert.Equal(t, "23:30", resp.DeadlineTime)
	assert.Equal(t, 4, resp.DaysLeft)
}

func TestAssignTask_Deadlines(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxAs(t, user.RoleManager, managerID)

	_, err := env.svc.AssignTask(ctx, task.AssignTaskRequest{Title: "x", AssigneeID: employeeID, Deadline: "2024-07-14T09:00"})
	assert.ErrorIs(t, err, task.ErrDeadlineInPast)

	// Earlier today is still today
	resp, err := env.svc.AssignTask(ctx, task.AssignTaskRequest{Title: "x", AssigneeID: employeeID, Deadline: "2024-07-15T08:00"})
	require.NoError(t, err)
	assert.True(t, resp.IsDueToday)
	assert.Equal(t, "Due today", resp.DueLabel)

	_, err = env.svc.AssignTask(ctx, task.AssignTaskRequest{Title: "x", AssigneeID: employeeID, Deadline: "tomorrow"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestAssignTask_Assignee(t *testing.T) {
	t.Run("unknown assignee", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.AssignTask(ctxAs(t, user.RoleManager, managerID), task.AssignTaskRequest{
			Title: "x", AssigneeID: "0190b1a2-3c4d-7e5f-8a6b-0000000000ff", Deadline: "2024-07-16T17:00",
		})
		assert.ErrorIs(t, err, task.ErrAssigneeNotFound)
	})

	t.Run("directory down falls back to known name", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, task.Task{Title: "earlier", AssigneeID: employeeID, Deadline: fixedNow})
		env.directory.err = errors.New("connection refused")

		resp, err := env.svc.AssignTask(ctxAs(t, user.RoleManager, managerID), task.AssignTaskRequest{
			Title: "x", AssigneeID: employeeID, Deadline: "2024-07-16T17:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fox Mulder", resp.AssigneeName)
		assert.Equal(t, managerID+"@example.com", resp.AssignedByName)
	})

	t.Run("employees cannot assign", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.AssignTask(ctxAs(t, user.RoleEmployee, employeeID), task.AssignTaskRequest{
			Title: "x", AssigneeID: otherID, Deadline: "2024-07-16T17:00",
		})
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})
}

func TestListMyTasks(t *testing.T) {
	env := newTestEnv(t)
	overdue := env.seed(t, task.Task{Title: "Overdue audit", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-12T17:00"), Status: task.StatusInProgress, Progress: 40})
	today := env.seed(t, task.Task{Title: "Standup notes", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-15T17:00"), Priority: task.PriorityHigh})
	later := env.seed(t, task.Task{Title: "Budget draft", Description: "Audit numbers", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-22T09:00")})
	env.seed(t, task.Task{Title: "Someone else", AssigneeID: otherID, Deadline: env.wall(t, "2024-07-16T17:00")})

	ctx := ctxAs(t, user.RoleEmployee, employeeID)

	resp, err := env.svc.ListMyTasks(ctx, task.MyTaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, "1-3 of 3 results", resp.Showing)
	require.Len(t, resp.Tasks, 3)
	assert.Equal(t, []string{overdue.ID, today.ID, later.ID}, []string{resp.Tasks[0].ID, resp.Tasks[1].ID, resp.Tasks[2].ID})
	assert.True(t, resp.Tasks[0].IsOverdue)
	assert.Equal(t, "Overdue by 3 days", resp.Tasks[0].DueLabel)
	assert.True(t, resp.Tasks[1].IsDueToday)
	assert.Equal(t, "Due in 7 days", resp.Tasks[2].DueLabel)

	resp, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{Overdue: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, overdue.ID, resp.Tasks[0].ID)

	resp, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{Search: "AUDIT"})
	require.NoError(t, err)
	assert.Len(t, resp.Tasks, 2)

	resp, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{SortBy: "priority", SortOrder: "DESC", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "1-2 of 3 results", resp.Showing)
	assert.Equal(t, today.ID, resp.Tasks[0].ID)

	resp, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "3-3 of 3 results", resp.Showing)
	require.Len(t, resp.Tasks, 1)

	_, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{Status: "done"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestListMyTasks_ProvisionsDemoTasks(t *testing.T) {
	var prov *fakeProvisioner
	env := newTestEnv(t, func(s *TaskServiceImpl) {
		prov = &fakeProvisioner{repo: s.repo}
		s.provisioner = prov
	})

	ctx := ctxAs(t, user.RoleEmployee, employeeID)
	resp, err := env.svc.ListMyTasks(ctx, task.MyTaskFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Fox Mulder", prov.name)

	_, err = env.svc.ListMyTasks(ctx, task.MyTaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, prov.calls)
}

func TestGetMyTask(t *testing.T) {
	env := newTestEnv(t)
	mine := env.seed(t, task.Task{Title: "Mine", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00")})
	theirs := env.seed(t, task.Task{Title: "Theirs", AssigneeID: otherID, Deadline: env.wall(t, "2024-07-16T17:00")})
	ctx := ctxAs(t, user.RoleEmployee, employeeID)

	_, err := env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: mine.ID, Progress: intPtr(30), Note: "started"})
	require.NoError(t, err)

	resp, err := env.svc.GetMyTask(ctx, mine.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.LatestSubmission)
	assert.Equal(t, 30, resp.LatestSubmission.Progress)
	assert.Equal(t, "12:00", resp.LatestSubmission.SubmittedTime)

	_, err = env.svc.GetMyTask(ctx, theirs.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = env.svc.GetMyTask(ctx, "missing")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestSubmitProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := ctxAs(t, user.RoleEmployee, employeeID)
	overdue := env.seed(t, task.Task{Title: "Overdue", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-14T17:00")})
	theirs := env.seed(t, task.Task{Title: "Theirs", AssigneeID: otherID, Deadline: env.wall(t, "2024-07-16T17:00")})
	done := env.seed(t, task.Task{Title: "Done", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00"), Status: task.StatusCompleted, Progress: 100})

	sub, err := env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: overdue.ID, Progress: intPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, "pending", sub.Status)
	assert.Equal(t, "2024-07-15", sub.SubmittedDate)
	assert.True(t, sub.SubmittedLate)
	assert.Equal(t, "Fox Mulder", sub.EmployeeName)

	stored, err := env.repo.GetByID(context.Background(), overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, stored.Status)
	assert.Equal(t, 50, stored.Progress)

	_, err = env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: overdue.ID, Progress: intPtr(100)})
	require.NoError(t, err)
	stored, _ = env.repo.GetByID(context.Background(), overdue.ID)
	assert.Equal(t, task.StatusSubmitted, stored.Status)

	_, err = env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: theirs.ID, Progress: intPtr(10)})
	assert.ErrorIs(t, err, task.ErrNotTaskAssignee)

	_, err = env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: done.ID, Progress: intPtr(10)})
	assert.ErrorIs(t, err, task.ErrTaskAlreadyCompleted)

	_, err = env.svc.SubmitProgress(ctx, task.SubmitProgressRequest{TaskID: overdue.ID, Progress: intPtr(101)})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReviewSubmission(t *testing.T) {
	env := newTestEnv(t)
	tk := env.seed(t, task.Task{Title: "Review me", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00")})

	sub, err := env.svc.SubmitProgress(ctxAs(t, user.RoleEmployee, employeeID), task.SubmitProgressRequest{TaskID: tk.ID, Progress: intPtr(100)})
	require.NoError(t, err)

	manager := ctxAs(t, user.RoleManager, managerID)

	_, err = env.svc.ReviewSubmission(manager, task.ReviewSubmissionRequest{SubmissionID: sub.ID, Action: task.ReviewActionReject})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	_, err = env.svc.ReviewSubmission(ctxAs(t, user.RoleEmployee, employeeID), task.ReviewSubmissionRequest{SubmissionID: sub.ID, Action: task.ReviewActionApprove})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	reviewed, err := env.svc.ReviewSubmission(manager, task.ReviewSubmissionRequest{SubmissionID: sub.ID, Action: task.ReviewActionApprove, Note: strPtr("nice")})
	require.NoError(t, err)
	assert.Equal(t, "approved", reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "2024-07-15T12:00:00-04:00", *reviewed.ReviewedAt)
	assert.Equal(t, managerID, *reviewed.ReviewerID)

	stored, err := env.repo.GetByID(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	require.NotNil(t, stored.CompletedAt)

	events := env.publisher.events[employeeID]
	require.Len(t, events, 1)
	assert.Equal(t, sse.EventSubmissionReviewed, events[0].Event)

	_, err = env.svc.ReviewSubmission(manager, task.ReviewSubmissionRequest{SubmissionID: sub.ID, Action: task.ReviewActionApprove})
	assert.ErrorIs(t, err, task.ErrSubmissionAlreadyReviewed)
}

func TestReviewSubmission_Reject(t *testing.T) {
	env := newTestEnv(t)
	tk := env.seed(t, task.Task{Title: "Needs work", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00")})
	sub, err := env.svc.SubmitProgress(ctxAs(t, user.RoleEmployee, employeeID), task.SubmitProgressRequest{TaskID: tk.ID, Progress: intPtr(60)})
	require.NoError(t, err)

	reviewed, err := env.svc.ReviewSubmission(ctxAs(t, user.RoleManager, managerID), task.ReviewSubmissionRequest{
		SubmissionID: sub.ID, Action: task.ReviewActionReject, Note: strPtr("missing totals"),
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", reviewed.Status)
	assert.Equal(t, "missing totals", *reviewed.ReviewNote)

	stored, _ := env.repo.GetByID(context.Background(), tk.ID)
	assert.Equal(t, task.StatusRejected, stored.Status)
	assert.Equal(t, 60, stored.Progress)
}

func TestReviewSubmission_CompletedTaskStaysCompleted(t *testing.T) {
	env := newTestEnv(t)
	tk := env.seed(t, task.Task{Title: "Two updates", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00")})
	employee := ctxAs(t, user.RoleEmployee, employeeID)
	manager := ctxAs(t, user.RoleManager, managerID)

	partial, err := env.svc.SubmitProgress(employee, task.SubmitProgressRequest{TaskID: tk.ID, Progress: intPtr(50)})
	require.NoError(t, err)
	final, err := env.svc.SubmitProgress(employee, task.SubmitProgressRequest{TaskID: tk.ID, Progress: intPtr(100)})
	require.NoError(t, err)

	_, err = env.svc.ReviewSubmission(manager, task.ReviewSubmissionRequest{SubmissionID: final.ID, Action: task.ReviewActionApprove})
	require.NoError(t, err)

	_, err = env.svc.ReviewSubmission(manager, task.ReviewSubmissionRequest{
		SubmissionID: partial.ID, Action: task.ReviewActionReject, Note: strPtr("stale"),
	})
	assert.ErrorIs(t, err, task.ErrTaskAlreadyCompleted)

	stored, err := env.repo.GetByID(context.Background(), tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	assert.NotNil(t, stored.CompletedAt)

	leftover, err := env.repo.GetSubmissionByID(context.Background(), partial.ID)
	require.NoError(t, err)
	assert.Equal(t, task.SubmissionPending, leftover.Status)
}

func TestListSubmissions(t *testing.T) {
	env := newTestEnv(t)
	tk := env.seed(t, task.Task{Title: "Many updates", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00")})
	for i := 0; i < 3; i++ {
		_, err := env.repo.CreateSubmission(context.Background(), task.Submission{
			TaskID: tk.ID, EmployeeID: employeeID, Progress: 10 * (i + 1),
			SubmittedAt: fixedNow.Add(time.Duration(i) * time.Hour), Status: task.SubmissionPending,
		})
		require.NoError(t, err)
	}

	resp, err := env.svc.ListSubmissions(ctxAs(t, user.RoleManager, managerID), task.SubmissionFilter{Status: "pending", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Submissions, 2)
	assert.Equal(t, 30, resp.Submissions[0].Progress)
	assert.Equal(t, "Many updates", resp.Submissions[0].TaskTitle)

	_, err = env.svc.ListSubmissions(ctxAs(t, user.RoleEmployee, employeeID), task.SubmissionFilter{})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestGetMySummary(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, task.Task{Title: "overdue", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-12T17:00"), Status: task.StatusInProgress})
	env.seed(t, task.Task{Title: "today", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-15T17:00")})
	next := env.seed(t, task.Task{Title: "saturday", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-20T18:00")})
	env.seed(t, task.Task{Title: "done", AssigneeID: employeeID, Deadline: env.wall(t, "2024-07-16T17:00"), Status: task.StatusCompleted, CompletedAt: timePtr(fixedNow)})
	env.seed(t, task.Task{Title: "next month", AssigneeID: employeeID, Deadline: env.wall(t, "2024-08-02T17:00"), Status: task.StatusRejected})

	summary, err := env.svc.GetMySummary(ctxAs(t, user.RoleEmployee, employeeID))
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Todo)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, 1, summary.Overdue)
	assert.Equal(t, 1, summary.DueToday)
	assert.Equal(t, 2, summary.DueThisWeek, "today's and Saturday evening's deadlines")
	require.NotNil(t, summary.NextDeadline)
	assert.Equal(t, "today", summary.NextDeadline.Title)
	assert.NotEqual(t, next.ID, summary.NextDeadline.ID)

	_, err = env.svc.GetMySummary(ctxAs(t, user.RolePending, ""))
	assert.ErrorIs(t, err, user.ErrEmployeeIDRequired)
}

func TestDueLabel(t *testing.T) {
	open := task.Task{Status: task.StatusTodo}
	assert.Equal(t, "Overdue by 3 days", dueLabel(open, -3))
	assert.Equal(t, "Overdue by 1 day", dueLabel(open, -1))
	assert.Equal(t, "Due today", dueLabel(open, 0))
	assert.Equal(t, "Due tomorrow", dueLabel(open, 1))
	assert.Equal(t, "Due in 5 days", dueLabel(open, 5))
	assert.Equal(t, "Completed", dueLabel(task.Task{Status: task.StatusCompleted}, -2))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pages, showing := paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 3, pages)
	assert.Equal(t, "3-4 of 5 results", showing)

	page, _, showing = paginate(items, 4, 2)
	assert.Empty(t, page)
	assert.Equal(t, "0 of 5 results", showing)

	page, pages, showing = paginate([]int{}, 1, 20)
	assert.Empty(t, page)
	assert.Equal(t, 0, pages)
	assert.Equal(t, "0-0 of 0 results", showing)
}
