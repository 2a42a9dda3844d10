package fixtures

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

// taskFile is the DEMO_TASKS_FILE layout:
//
//	assigned_by: {id: ..., name: ...}
//	tasks:
//	  - title: Prepare monthly recap
//	    assignee: {id: ..., name: ...}
//	    priority: high
//	    status: in_progress
//	    progress: 40
//	    due_in_days: 2      # relative to today in the portal timezone
//	    due_time: "17:00"
//	    submissions:
//	      - progress: 40
//	        note: halfway
//	        submitted_days_ago: 1
//
// An absolute "deadline" (YYYY-MM-DDTHH:MM or RFC 3339) may replace due_in_days.
type taskFile struct {
	AssignedBy DemoEmployee  `yaml:"assigned_by"`
	Tasks      []taskFixture `yaml:"tasks"`
}

type taskFixture struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Assignee    DemoEmployee        `yaml:"assignee"`
	Priority    string              `yaml:"priority"`
	Status      string              `yaml:"status"`
	Progress    int                 `yaml:"progress"`
	Deadline    string              `yaml:"deadline"`
	DueInDays   *int                `yaml:"due_in_days"`
	DueTime     string              `yaml:"due_time"`
	Submissions []submissionFixture `yaml:"submissions"`
}

type submissionFixture struct {
	Progress         int    `yaml:"progress"`
	Note             string `yaml:"note"`
	Status           string `yaml:"status"`
	SubmittedDaysAgo int    `yaml:"submitted_days_ago"`
	ReviewNote       string `yaml:"review_note"`
}

// LoadTasksFile reads a YAML task fixture file
func LoadTasksFile(path string, p *timepolicy.Policy) ([]task.Task, []task.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read demo tasks file: %w", err)
	}
	tasks, submissions, err := ParseTasks(data, p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, submissions, nil
}

// ParseTasks converts YAML task fixtures, resolving relative deadlines against today
func ParseTasks(data []byte, p *timepolicy.Policy) ([]task.Task, []task.Submission, error) {
	var file taskFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("invalid demo tasks YAML: %w", err)
	}

	assigner := file.AssignedBy
	if assigner.ID == "" {
		assigner = DemoManager
	}

	today := p.ToMidnight(p.Now())
	tasks := make([]task.Task, 0, len(file.Tasks))
	submissions := make([]task.Submission, 0)

	for i, fx := range file.Tasks {
		t, err := fx.toTask(p, today, assigner)
		if err != nil {
			return nil, nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		for _, sub := range fx.Submissions {
			submissions = append(submissions, sub.toSubmission(p, today, t, assigner))
		}
		tasks = append(tasks, t)
	}

	return tasks, submissions, nil
}

func (fx taskFixture) toTask(p *timepolicy.Policy, today time.Time, assigner DemoEmployee) (task.Task, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(fx.Title) {
		errs.Add("title", "title is required")
	}
	if validator.IsEmpty(fx.Assignee.ID) {
		errs.Add("assignee.id", "assignee id is required")
	}
	if fx.Priority == "" {
		fx.Priority = string(task.PriorityMedium)
	} else if !validator.IsInSlice(fx.Priority, []string{"low", "medium", "high"}) {
		errs.Add("priority", "priority must be one of: low, medium, high")
	}
	if fx.Status == "" {
		fx.Status = string(task.StatusTodo)
	} else if !validator.IsInSlice(fx.Status, []string{"todo", "in_progress", "submitted", "completed", "rejected"}) {
		errs.Add("status", "status must be one of: todo, in_progress, submitted, completed, rejected")
	}

	deadline, err := fx.resolveDeadline(p, today)
	if err != nil {
		errs.Add("deadline", err.Error())
	}
	if err := errs.Err(); err != nil {
		return task.Task{}, err
	}

	id := fx.ID
	if id == "" {
		id = newID()
	}
	name := fx.Assignee.Name
	if name == "" {
		name = fx.Assignee.ID
	}
	created := wallClock(p, p.AddDays(today, -7), 9, 0)

	t := task.Task{
		ID:             id,
		Title:          strings.TrimSpace(fx.Title),
		Description:    fx.Description,
		AssigneeID:     fx.Assignee.ID,
		AssigneeName:   name,
		AssignedByID:   assigner.ID,
		AssignedByName: assigner.Name,
		Priority:       task.Priority(fx.Priority),
		Status:         task.Status(fx.Status),
		Progress:       clampProgress(fx.Progress),
		Deadline:       deadline,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	if t.Status == task.StatusCompleted {
		t.Progress = 100
		completedAt := deadline
		if now := p.Now(); now.Before(completedAt) {
			completedAt = now
		}
		t.CompletedAt = timePtr(completedAt)
	}
	return t, nil
}

func (fx taskFixture) resolveDeadline(p *timepolicy.Policy, today time.Time) (time.Time, error) {
	if fx.Deadline != "" {
		return p.Parse(fx.Deadline)
	}
	if fx.DueInDays == nil {
		return time.Time{}, fmt.Errorf("deadline or due_in_days is required")
	}

	hour, minute := 17, 0
	if fx.DueTime != "" {
		clock, err := time.Parse(timepolicy.LayoutTime, fx.DueTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("due_time must be in HH:MM format")
		}
		hour, minute = clock.Hour(), clock.Minute()
	}
	return wallClock(p, p.AddDays(today, *fx.DueInDays), hour, minute), nil
}

func (sub submissionFixture) toSubmission(p *timepolicy.Policy, today time.Time, t task.Task, reviewer DemoEmployee) task.Submission {
	status := task.SubmissionStatus(sub.Status)
	if status == "" {
		status = task.SubmissionPending
	}
	submittedAt := wallClock(p, p.AddDays(today, -sub.SubmittedDaysAgo), 14, 0)

	s := task.Submission{
		ID:           newID(),
		TaskID:       t.ID,
		EmployeeID:   t.AssigneeID,
		EmployeeName: t.AssigneeName,
		Note:         sub.Note,
		Progress:     clampProgress(sub.Progress),
		SubmittedAt:  submittedAt,
		Status:       status,
	}
	if status != task.SubmissionPending {
		s.ReviewedAt = timePtr(submittedAt.Add(2 * time.Hour))
		s.ReviewerID = strPtr(reviewer.ID)
		if sub.ReviewNote != "" {
			s.ReviewNote = strPtr(sub.ReviewNote)
		}
	}
	return s
}
