package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2024-07-15 12:00 EDT
var fixedNow = time.Date(2024, 7, 15, 16, 0, 0, 0, time.UTC)

func newTestPolicy(t *testing.T) *timepolicy.Policy {
	t.Helper()
	p, err := timepolicy.New(timepolicy.DefaultZone, timepolicy.WithClock(timepolicy.ClockFunc(func() time.Time { return fixedNow })))
	require.NoError(t, err)
	return p
}

func TestGenerateDemoTasks_RelativeToToday(t *testing.T) {
	p := newTestPolicy(t)
	tasks, submissions := GenerateDemoTasks(p, 42, DemoManager, DefaultDemoEmployees[:2]...)

	require.Len(t, tasks, 2*len(demoSlots))
	byID := make(map[string]task.Task, len(tasks))
	perEmployee := map[string]struct{ overdue, today int }{}

	for _, tk := range tasks {
		byID[tk.ID] = tk
		assert.Equal(t, DemoManager.ID, tk.AssignedByID)
		assert.Equal(t, timepolicy.DefaultZone, tk.Deadline.Location().String())
		assert.False(t, tk.CreatedAt.After(fixedNow), "created in the past")

		counts := perEmployee[tk.AssigneeID]
		if p.IsPast(tk.Deadline) && !tk.IsCompleted() {
			counts.overdue++
		}
		if p.IsToday(tk.Deadline) {
			counts.today++
		}
		perEmployee[tk.AssigneeID] = counts

		if tk.IsCompleted() {
			require.NotNil(t, tk.CompletedAt)
			assert.False(t, p.ToMidnight(*tk.CompletedAt).After(p.ToMidnight(tk.Deadline)), "completed on time")
		}
	}

	for id, counts := range perEmployee {
		assert.Equal(t, 1, counts.overdue, id)
		assert.Equal(t, 1, counts.today, id)
	}

	require.Len(t, submissions, 2*3)
	for _, sub := range submissions {
		parent, ok := byID[sub.TaskID]
		require.True(t, ok)
		assert.Equal(t, parent.AssigneeID, sub.EmployeeID)
	}
}

func TestGenerateDemoTasks_DueTodayIsWallClock(t *testing.T) {
	p := newTestPolicy(t)
	tasks, _ := GenerateDemoTasks(p, 1, DemoManager, DefaultDemoEmployees[0])

	var dueToday []task.Task
	for _, tk := range tasks {
		if p.IsToday(tk.Deadline) {
			dueToday = append(dueToday, tk)
		}
	}
	require.Len(t, dueToday, 1)
	assert.Equal(t, "2024-07-15", p.FormatDate(dueToday[0].Deadline))
	assert.Equal(t, "17:00", p.FormatTime(dueToday[0].Deadline))
}

func TestGenerateDemoTasks_SeedIsDeterministic(t *testing.T) {
	p := newTestPolicy(t)
	a, _ := GenerateDemoTasks(p, 7, DemoManager, DefaultDemoEmployees...)
	b, _ := GenerateDemoTasks(p, 7, DemoManager, DefaultDemoEmployees...)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
		assert.Equal(t, a[i].Priority, b[i].Priority)
		assert.True(t, a[i].Deadline.Equal(b[i].Deadline))
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
}

func TestLoadTasksFile(t *testing.T) {
	p := newTestPolicy(t)
	tasks, submissions, err := LoadTasksFile("testdata/tasks.yaml", p)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	overdue := tasks[0]
	assert.Equal(t, "task-overdue", overdue.ID)
	assert.Equal(t, task.PriorityHigh, overdue.Priority)
	assert.Equal(t, "2024-07-13", p.FormatDate(overdue.Deadline))
	assert.Equal(t, "17:00", p.FormatTime(overdue.Deadline))
	assert.True(t, p.IsPast(overdue.Deadline))

	today := tasks[1]
	assert.Equal(t, task.PriorityMedium, today.Priority)
	assert.Equal(t, task.StatusTodo, today.Status)
	assert.True(t, p.IsToday(today.Deadline))
	assert.Equal(t, "09:30", p.FormatTime(today.Deadline))

	absolute := tasks[2]
	assert.Equal(t, "emp-2", absolute.AssigneeName)
	assert.Equal(t, 100, absolute.Progress)
	assert.Equal(t, "2024-07-20T17:00", p.FormatForInput(absolute.Deadline))
	require.NotNil(t, absolute.CompletedAt)
	assert.True(t, absolute.CompletedAt.Equal(fixedNow))

	require.Len(t, submissions, 1)
	assert.Equal(t, "task-overdue", submissions[0].TaskID)
	assert.Equal(t, task.SubmissionPending, submissions[0].Status)
	assert.Equal(t, "2024-07-14", p.FormatDate(submissions[0].SubmittedAt))
}

func TestParseTasks_Invalid(t *testing.T) {
	p := newTestPolicy(t)
	cases := map[string]string{
		"not yaml":         "tasks: [",
		"missing title":    "tasks:\n  - assignee: {id: e1}\n    due_in_days: 1\n",
		"bad priority":     "tasks:\n  - title: a\n    assignee: {id: e1}\n    priority: urgent\n    due_in_days: 1\n",
		"missing deadline": "tasks:\n  - title: a\n    assignee: {id: e1}\n",
		"bad due_time":     "tasks:\n  - title: a\n    assignee: {id: e1}\n    due_in_days: 1\n    due_time: noon\n",
		"bad deadline":     "tasks:\n  - title: a\n    assignee: {id: e1}\n    deadline: tomorrow\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseTasks([]byte(doc), p)
			assert.Error(t, err)
		})
	}

	_, _, err := LoadTasksFile("testdata/missing.yaml", p)
	assert.Error(t, err)
}

func TestSeeder_ResetAndProvision(t *testing.T) {
	ctx := context.Background()
	p := newTestPolicy(t)
	repo := memory.NewTaskRepository()
	seeder := NewSeeder(p, repo, "", 42)

	n, err := seeder.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultDemoEmployees)*len(demoSlots), n)

	n, err = seeder.ProvisionEmployee(ctx, DefaultDemoEmployees[0].ID, "Dana Scully")
	require.NoError(t, err)
	assert.Zero(t, n, "employee already has tasks")

	n, err = seeder.ProvisionEmployee(ctx, "emp-new", "")
	require.NoError(t, err)
	assert.Equal(t, len(demoSlots), n)

	mine, err := repo.List(ctx, "emp-new")
	require.NoError(t, err)
	require.Len(t, mine, len(demoSlots))
	assert.Equal(t, "Demo Employee", mine[0].AssigneeName)

	subs, err := repo.ListSubmissions(ctx, task.SubmissionQuery{EmployeeID: "emp-new"})
	require.NoError(t, err)
	assert.Len(t, subs, 3)
}

func TestSeeder_FromFile(t *testing.T) {
	ctx := context.Background()
	p := newTestPolicy(t)
	repo := memory.NewTaskRepository()
	seeder := NewSeeder(p, repo, "testdata/tasks.yaml", 42)

	n, err := seeder.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = seeder.ProvisionEmployee(ctx, "emp-new", "New Hire")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = NewSeeder(p, repo, "testdata/missing.yaml", 42).Reset(ctx)
	assert.Error(t, err)
}
