package task

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
)

// GetAnalytics implements task.TaskService. Tasks belong to the month their
// deadline falls in, in the portal timezone.
func (s *TaskServiceImpl) GetAnalytics(ctx context.Context, month string) (task.AnalyticsResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return task.AnalyticsResponse{}, err
	}
	if !claims.Can(user.PermissionTaskViewAll) {
		return task.AnalyticsResponse{}, user.ErrInsufficientPermissions
	}

	p := s.policy
	year, monthIndex, err := p.ParseMonth(month)
	if err != nil {
		return task.AnalyticsResponse{}, task.ErrInvalidMonth
	}
	monthStart, monthEnd := p.MonthStart(year, monthIndex), p.MonthEnd(year, monthIndex)

	all, err := s.repo.List(ctx, "")
	if err != nil {
		return task.AnalyticsResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(all))
	for _, t := range all {
		if within(t.Deadline, monthStart, monthEnd) {
			tasks = append(tasks, t)
		}
	}

	resp := task.AnalyticsResponse{
		Month:     fmt.Sprintf("%04d-%02d", year, monthIndex+1),
		MonthName: p.MonthName(monthIndex),
		Year:      year,
	}

	type progressAcc struct {
		task.EmployeeProgress
		progressSum int
	}
	byEmployee := make(map[string]*progressAcc)

	for _, t := range tasks {
		resp.Totals.Add(t.Status)
		overdue := s.isOverdue(t)
		if overdue {
			resp.OverdueCount++
		}
		if s.completedOnTime(t) {
			resp.OnTimeCompleted++
		}

		acc, ok := byEmployee[t.AssigneeID]
		if !ok {
			acc = &progressAcc{EmployeeProgress: task.EmployeeProgress{EmployeeID: t.AssigneeID, EmployeeName: t.AssigneeName}}
			byEmployee[t.AssigneeID] = acc
		}
		acc.Assigned++
		acc.progressSum += t.Progress
		if t.IsCompleted() {
			acc.Completed++
		}
		if overdue {
			acc.Overdue++
		}
	}

	resp.CompletionRate = percent(resp.Totals.Completed, resp.Totals.Total)
	resp.CompletionRateLabel = fmt.Sprintf("%.1f%%", resp.CompletionRate)
	resp.OnTimeRate = percent(resp.OnTimeCompleted, resp.Totals.Completed)

	resp.Employees = make([]task.EmployeeProgress, 0, len(byEmployee))
	for _, acc := range byEmployee {
		ep := acc.EmployeeProgress
		ep.AverageProgress = round1(float64(acc.progressSum) / float64(ep.Assigned))
		ep.CompletionRate = percent(ep.Completed, ep.Assigned)
		resp.Employees = append(resp.Employees, ep)
	}
	sort.Slice(resp.Employees, func(i, j int) bool {
		if resp.Employees[i].EmployeeName == resp.Employees[j].EmployeeName {
			return resp.Employees[i].EmployeeID < resp.Employees[j].EmployeeID
		}
		return resp.Employees[i].EmployeeName < resp.Employees[j].EmployeeName
	})

	resp.WeeklyTrend = s.weeklyTrend(tasks, monthStart, monthEnd)
	return resp, nil
}

// weeklyTrend buckets the month's tasks into Sunday-Saturday weeks
func (s *TaskServiceImpl) weeklyTrend(tasks []task.Task, monthStart, monthEnd time.Time) []task.WeeklyTrendPoint {
	p := s.policy
	var points []task.WeeklyTrendPoint

	for ws := p.WeekStart(monthStart); !ws.After(monthEnd); ws = p.AddDays(ws, 7) {
		we := p.ToEndOfDay(p.WeekEnd(ws))
		point := task.WeeklyTrendPoint{
			WeekStart: p.FormatDate(ws),
			WeekEnd:   p.FormatDate(we),
			Label:     fmt.Sprintf("%s - %s", ws.Format("Jan 2"), we.Format("Jan 2")),
		}
		for _, t := range tasks {
			if within(t.Deadline, ws, we) {
				point.Due++
			}
			if t.IsCompleted() && t.CompletedAt != nil && within(*t.CompletedAt, ws, we) {
				point.Completed++
			}
		}
		points = append(points, point)
	}
	return points
}

// completedOnTime compares civil days, so finishing late on the due day counts
func (s *TaskServiceImpl) completedOnTime(t task.Task) bool {
	if !t.IsCompleted() || t.CompletedAt == nil {
		return false
	}
	p := s.policy
	return !p.ToMidnight(*t.CompletedAt).After(p.ToMidnight(t.Deadline))
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) * 100 / float64(whole))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
