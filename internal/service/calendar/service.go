package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CalendarServiceImpl struct {
	policy   *timepolicy.Policy
	taskRepo task.TaskRepository
}

func NewCalendarService(policy *timepolicy.Policy, taskRepo task.TaskRepository) calendar.CalendarService {
	return &CalendarServiceImpl{
		policy:   policy,
		taskRepo: taskRepo,
	}
}

// Now implements calendar.CalendarService.
func (s *CalendarServiceImpl) Now(ctx context.Context) calendar.TimeSnapshot {
	p := s.policy
	now := p.Now()
	return calendar.TimeSnapshot{
		Now:           now.Format(time.RFC3339),
		UTC:           now.UTC().Format(time.RFC3339),
		UnixMillis:    now.UnixMilli(),
		Date:          p.FormatDate(now),
		Time:          p.FormatTime(now),
		DisplayDate:   p.FormatDisplayDate(now),
		DayName:       p.DayName(now),
		MonthName:     p.MonthName(int(now.Month()) - 1),
		WeekStart:     p.FormatDate(p.WeekStart(now)),
		WeekEnd:       p.FormatDate(p.WeekEnd(now)),
		Timezone:      p.Descriptor(),
		OffsetMinutes: p.TimezoneOffsetMinutes(),
	}
}

// Convert implements calendar.CalendarService.
func (s *CalendarServiceImpl) Convert(ctx context.Context, at string) (calendar.ConversionResponse, error) {
	p := s.policy
	at = strings.TrimSpace(at)

	var errs validator.ValidationErrors
	if at == "" {
		errs.Add("at", "at is required")
		return calendar.ConversionResponse{}, errs
	}

	t, err := s.parseInstant(at)
	if err != nil {
		errs.Add("at", calendar.ErrInvalidInstant.Error())
		return calendar.ConversionResponse{}, errs
	}

	zoned := p.ToZoned(t)
	return calendar.ConversionResponse{
		Input:         at,
		UTC:           t.UTC().Format(time.RFC3339Nano),
		Zoned:         zoned.Format(time.RFC3339Nano),
		Date:          p.FormatDate(t),
		Time:          p.FormatTime(t),
		InputValue:    p.FormatForInput(t),
		DisplayDate:   p.FormatDisplayDate(t),
		DayName:       p.DayName(t),
		Midnight:      p.ToMidnight(t).Format(time.RFC3339Nano),
		EndOfDay:      p.ToEndOfDay(t).Format(time.RFC3339Nano),
		WeekStart:     p.FormatDate(p.WeekStart(t)),
		WeekEnd:       p.FormatDate(p.WeekEnd(t)),
		IsToday:       p.IsToday(t),
		IsPast:        p.IsPast(t),
		IsFuture:      p.IsFuture(t),
		DaysFromToday: p.DaysUntil(t),
		Timezone:      p.Descriptor(),
	}, nil
}

// parseInstant accepts the wire formats of timepolicy.Parse plus epoch milliseconds
func (s *CalendarServiceImpl) parseInstant(at string) (time.Time, error) {
	if validator.IsNumeric(at) {
		var instant timepolicy.Instant
		_ = instant.UnmarshalJSON([]byte(at))
		if t := s.policy.Resolve(instant); !t.IsZero() {
			return t, nil
		}
		return time.Time{}, calendar.ErrInvalidInstant
	}
	return s.policy.Parse(at)
}

// GetMonth implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetMonth(ctx context.Context, month string) (calendar.MonthResponse, error) {
	p := s.policy

	year, monthIndex, err := p.ParseMonth(month)
	if err != nil {
		return calendar.MonthResponse{}, calendar.ErrInvalidMonth
	}

	tasks, err := s.visibleTasks(ctx)
	if err != nil {
		return calendar.MonthResponse{}, err
	}

	start := p.MonthStart(year, monthIndex)
	end := p.MonthEnd(year, monthIndex)
	firstWeekday := p.FirstWeekdayOfMonth(year, monthIndex)
	daysInMonth := p.DaysInMonth(year, monthIndex)

	badges := make(map[string][]calendar.TaskBadge)
	tasksDue := 0
	for _, t := range tasks {
		if t.Deadline.Before(start) || t.Deadline.After(end) {
			continue
		}
		date := p.FormatDate(t.Deadline)
		badges[date] = append(badges[date], calendar.TaskBadge{
			ID:           t.ID,
			Title:        t.Title,
			AssigneeName: t.AssigneeName,
			Priority:     string(t.Priority),
			Status:       string(t.Status),
			DeadlineTime: p.FormatTime(t.Deadline),
			IsOverdue:    p.IsPast(t.Deadline) && !t.IsCompleted(),
		})
		tasksDue++
	}
	for date := range badges {
		sort.SliceStable(badges[date], func(i, j int) bool {
			return badges[date][i].DeadlineTime < badges[date][j].DeadlineTime
		})
	}

	slots := make([]*calendar.DayCell, 0, 42)
	for i := 0; i < firstWeekday; i++ {
		slots = append(slots, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := p.AddDays(start, day-1)
		key := p.FormatDate(date)
		weekday := (firstWeekday + day - 1) % 7
		dayBadges := badges[key]
		if dayBadges == nil {
			dayBadges = []calendar.TaskBadge{}
		}
		slots = append(slots, &calendar.DayCell{
			Date:          key,
			Day:           day,
			Weekday:       weekday,
			IsToday:       p.IsToday(date),
			IsPast:        p.IsPast(date),
			IsWeekend:     weekday == 0 || weekday == 6,
			TasksDue:      dayBadges,
			TasksDueCount: len(dayBadges),
		})
	}
	for len(slots)%7 != 0 {
		slots = append(slots, nil)
	}

	weeks := make([]calendar.Week, 0, len(slots)/7)
	for i := 0; i < len(slots); i += 7 {
		weeks = append(weeks, calendar.Week{Days: slots[i : i+7]})
	}

	return calendar.MonthResponse{
		Month:         fmt.Sprintf("%04d-%02d", year, monthIndex+1),
		Year:          year,
		MonthIndex:    monthIndex,
		MonthName:     p.MonthName(monthIndex),
		FirstWeekday:  firstWeekday,
		DaysInMonth:   daysInMonth,
		LeadingBlanks: firstWeekday,
		MonthStart:    start.Format(time.RFC3339),
		MonthEnd:      end.Format(time.RFC3339Nano),
		PrevMonth:     p.AddMonths(start, -1).Format(timepolicy.LayoutMonth),
		NextMonth:     p.AddMonths(start, 1).Format(timepolicy.LayoutMonth),
		Today:         p.FormatDate(p.Now()),
		Weekdays:      weekdayNames,
		Weeks:         weeks,
		TasksDue:      tasksDue,
	}, nil
}

// visibleTasks returns every task for managers, the caller's own otherwise
func (s *CalendarServiceImpl) visibleTasks(ctx context.Context) ([]task.Task, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if claims.Can(user.PermissionTaskViewAll) {
		return s.taskRepo.List(ctx, "")
	}
	if claims.EmployeeID == "" {
		return nil, user.ErrEmployeeIDRequired
	}
	return s.taskRepo.List(ctx, claims.EmployeeID)
}
