package task

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
)

type taskQuery struct {
	search    string
	status    string
	priority  string
	overdue   *bool
	sortBy    string
	sortOrder string
	page      int
	limit     int
}

func (s *TaskServiceImpl) listResponse(ctx context.Context, tasks []task.Task, q taskQuery) (task.ListTaskResponse, error) {
	matched := s.filterTasks(tasks, q)
	s.sortTasks(matched, q.sortBy, q.sortOrder)

	pageItems, totalPages, showing := paginate(matched, q.page, q.limit)

	responses := make([]task.TaskResponse, 0, len(pageItems))
	for _, t := range pageItems {
		resp := s.toTaskResponse(t)
		latest, ok, err := s.latestSubmission(ctx, t)
		if err != nil {
			return task.ListTaskResponse{}, err
		}
		if ok {
			resp.LatestSubmission = &latest
		}
		responses = append(responses, resp)
	}

	return task.ListTaskResponse{
		TotalCount: int64(len(matched)),
		Page:       q.page,
		Limit:      q.limit,
		TotalPages: totalPages,
		Showing:    showing,
		Tasks:      responses,
	}, nil
}

func (s *TaskServiceImpl) filterTasks(tasks []task.Task, q taskQuery) []task.Task {
	search := strings.ToLower(strings.TrimSpace(q.search))

	matched := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.status != "" && string(t.Status) != q.status {
			continue
		}
		if q.priority != "" && string(t.Priority) != q.priority {
			continue
		}
		if q.overdue != nil && s.isOverdue(t) != *q.overdue {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.AssigneeName), search) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

func (s *TaskServiceImpl) sortTasks(tasks []task.Task, sortBy, sortOrder string) {
	desc := sortOrder == "desc"

	compare := func(a, b task.Task) int {
		switch sortBy {
		case "priority":
			return a.Priority.Rank() - b.Priority.Rank()
		case "created_at":
			return a.CreatedAt.Compare(b.CreatedAt)
		case "title":
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case "progress":
			return a.Progress - b.Progress
		default:
			return a.Deadline.Compare(b.Deadline)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		c := compare(tasks[i], tasks[j])
		if c == 0 {
			return tasks[i].ID < tasks[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// paginate returns the requested page, the page count and the "showing" text
func paginate[T any](items []T, page, limit int) ([]T, int, string) {
	total := len(items)
	if total == 0 {
		return []T{}, 0, "0-0 of 0 results"
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	start := (page - 1) * limit
	if start >= total {
		return []T{}, totalPages, fmt.Sprintf("0 of %d results", total)
	}
	end := min(start+limit, total)

	return items[start:end], totalPages, fmt.Sprintf("%d-%d of %d results", start+1, end, total)
}

func (s *TaskServiceImpl) isOverdue(t task.Task) bool {
	return !t.IsCompleted() && s.policy.IsPast(t.Deadline)
}

func (s *TaskServiceImpl) toTaskResponse(t task.Task) task.TaskResponse {
	p := s.policy
	daysLeft := p.DaysUntil(t.Deadline)

	resp := task.TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		AssigneeID:      t.AssigneeID,
		AssigneeName:    t.AssigneeName,
		AssignedByID:    t.AssignedByID,
		AssignedByName:  t.AssignedByName,
		Priority:        string(t.Priority),
		Status:          string(t.Status),
		Progress:        t.Progress,
		Deadline:        formatInstant(p, t.Deadline),
		DeadlineDate:    p.FormatDate(t.Deadline),
		DeadlineTime:    p.FormatTime(t.Deadline),
		DeadlineDisplay: p.FormatDisplayDate(t.Deadline),
		DeadlineInput:   p.FormatForInput(t.Deadline),
		IsOverdue:       s.isOverdue(t),
		IsDueToday:      !t.IsCompleted() && p.IsToday(t.Deadline),
		DaysLeft:        daysLeft,
		DueLabel:        dueLabel(t, daysLeft),
		CreatedAt:       formatInstant(p, t.CreatedAt),
		UpdatedAt:       formatInstant(p, t.UpdatedAt),
	}
	if t.CompletedAt != nil {
		completed := formatInstant(p, *t.CompletedAt)
		resp.CompletedAt = &completed
	}
	return resp
}

func dueLabel(t task.Task, daysLeft int) string {
	switch {
	case t.IsCompleted():
		return "Completed"
	case daysLeft < -1:
		return fmt.Sprintf("Overdue by %d days", -daysLeft)
	case daysLeft == -1:
		return "Overdue by 1 day"
	case daysLeft == 0:
		return "Due today"
	case daysLeft == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", daysLeft)
	}
}

func (s *TaskServiceImpl) toSubmissionResponse(sub task.Submission, t task.Task) task.SubmissionResponse {
	p := s.policy
	resp := task.SubmissionResponse{
		ID:               sub.ID,
		TaskID:           sub.TaskID,
		TaskTitle:        t.Title,
		EmployeeID:       sub.EmployeeID,
		EmployeeName:     sub.EmployeeName,
		Note:             sub.Note,
		Progress:         sub.Progress,
		SubmittedAt:      formatInstant(p, sub.SubmittedAt),
		SubmittedDate:    p.FormatDate(sub.SubmittedAt),
		SubmittedTime:    p.FormatTime(sub.SubmittedAt),
		SubmittedDisplay: p.FormatDisplayDate(sub.SubmittedAt),
		SubmittedLate:    p.ToMidnight(sub.SubmittedAt).After(p.ToMidnight(t.Deadline)),
		Status:           string(sub.Status),
		ReviewNote:       sub.ReviewNote,
		ReviewerID:       sub.ReviewerID,
	}
	if sub.ReviewedAt != nil {
		reviewed := formatInstant(p, *sub.ReviewedAt)
		resp.ReviewedAt = &reviewed
	}
	return resp
}
