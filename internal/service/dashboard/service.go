package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"golang.org/x/sync/errgroup"
)

const upcomingLimit = 5

type DashboardServiceImpl struct {
	policy            *timepolicy.Policy
	attendanceService attendance.AttendanceService
	taskService       task.TaskService
	calendarService   calendar.CalendarService
}

func NewDashboardService(
	policy *timepolicy.Policy,
	attendanceService attendance.AttendanceService,
	taskService task.TaskService,
	calendarService calendar.CalendarService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		policy:            policy,
		attendanceService: attendanceService,
		taskService:       taskService,
		calendarService:   calendarService,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines.
// Attendance comes from the HRIS backend; its failure degrades the response
// instead of failing it.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	if _, err := jwt.EmployeeClaimsFromContext(ctx); err != nil {
		return nil, err
	}

	now := s.policy.Now()

	var (
		snapshot        calendar.TimeSnapshot
		week            *attendance.WeekSummary
		attendanceError string
		summary         task.MyTaskSummary
		upcoming        []task.TaskResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Clock
	g.Go(func() error {
		snapshot = s.calendarService.Now(gCtx)
		return nil
	})

	// 2. This week's attendance
	g.Go(func() error {
		w, err := s.attendanceService.GetWeekSummary(gCtx, now)
		if err != nil {
			slog.Warn("Dashboard attendance unavailable", "error", err)
			attendanceError = attendanceMessage(err)
			return nil
		}
		week = &w
		return nil
	})

	// 3. Task counters
	g.Go(func() error {
		var err error
		summary, err = s.taskService.GetMySummary(gCtx)
		return err
	})

	// 4. Nearest open deadlines
	g.Go(func() error {
		list, err := s.taskService.ListMyTasks(gCtx, task.MyTaskFilter{
			Overdue:   new(bool),
			SortBy:    "deadline",
			SortOrder: "asc",
			Limit:     20,
		})
		if err != nil {
			return err
		}
		upcoming = make([]task.TaskResponse, 0, upcomingLimit)
		for _, t := range list.Tasks {
			if t.Status == string(task.StatusCompleted) {
				continue
			}
			upcoming = append(upcoming, t)
			if len(upcoming) == upcomingLimit {
				break
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Greeting:        greeting(s.policy.ToZoned(now)),
		Now:             snapshot,
		Attendance:      week,
		AttendanceError: attendanceError,
		Tasks:           summary,
		UpcomingTasks:   upcoming,
	}, nil
}

func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func attendanceMessage(err error) string {
	var apiErr *hrisapi.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, attendance.ErrUpstreamUnavailable):
		return attendance.ErrUpstreamUnavailable.Error()
	default:
		return "attendance is unavailable"
	}
}
