package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

const (
	upstreamPageLimit = 100
	upstreamMaxPages  = 10
	maxRangeDays      = 62 // calendar days, both ends included
)

type AttendanceServiceImpl struct {
	policy *timepolicy.Policy
	attendance.AttendanceRepository
}

func NewAttendanceService(policy *timepolicy.Policy, repo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		policy:               policy,
		AttendanceRepository: repo,
	}
}

// GetHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	start, end, err := a.resolveRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	p := a.policy
	// Widen by a day on each side: the upstream date column may disagree with
	// the zoned civil date near midnight.
	query := attendance.ListQuery{
		StartDate: p.FormatDate(p.AddDays(start, -1)),
		EndDate:   p.FormatDate(p.AddDays(end, 1)),
	}

	employeeID := claims.EmployeeID
	mine := true
	if filter.EmployeeID != "" && filter.EmployeeID != claims.EmployeeID {
		if !claims.Can(user.PermissionAttendanceViewAll) {
			return attendance.HistoryResponse{}, user.ErrInsufficientPermissions
		}
		employeeID = filter.EmployeeID
		query.EmployeeID = filter.EmployeeID
		mine = false
	} else if claims.EmployeeID == "" {
		return attendance.HistoryResponse{}, user.ErrEmployeeIDRequired
	}

	records, err := a.fetchAll(ctx, query, mine)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	days, totals := a.buildDays(records, p.FormatDate(start), p.FormatDate(end))

	resp := attendance.HistoryResponse{
		EmployeeID: employeeID,
		StartDate:  p.FormatDate(start),
		EndDate:    p.FormatDate(end),
		RangeLabel: fmt.Sprintf("%s - %s", p.FormatDisplayDate(start), p.FormatDisplayDate(end)),
		Timezone:   p.Descriptor(),
		Days:       days,
		Totals:     totals,
	}
	if len(records) > 0 {
		resp.EmployeeName = records[0].EmployeeName
	}
	return resp, nil
}

// resolveRange defaults to the current Sunday..Saturday week; a single bound
// spans the week starting or ending on it.
func (a *AttendanceServiceImpl) resolveRange(startDate, endDate string) (time.Time, time.Time, error) {
	p := a.policy
	now := p.Now()
	start, end := p.WeekStart(now), p.WeekEnd(now)

	switch {
	case startDate != "" && endDate != "":
		start, end = p.ParseOrZero(startDate), p.ParseOrZero(endDate)
	case startDate != "":
		start = p.ParseOrZero(startDate)
		end = p.AddDays(start, 6)
	case endDate != "":
		end = p.ParseOrZero(endDate)
		start = p.AddDays(end, -6)
	}
	if start.IsZero() || end.IsZero() {
		var errs validator.ValidationErrors
		errs.Add("start_date", "start_date and end_date must be real calendar dates")
		return time.Time{}, time.Time{}, errs
	}

	start, end = p.ToMidnight(start), p.ToMidnight(end)
	if end.Before(start) {
		return time.Time{}, time.Time{}, attendance.ErrInvalidDateRange
	}
	if p.DaysDiff(start, end)+1 > maxRangeDays {
		return time.Time{}, time.Time{}, attendance.ErrDateRangeTooLong
	}
	return start, end, nil
}

// fetchAll follows upstream pagination
func (a *AttendanceServiceImpl) fetchAll(ctx context.Context, query attendance.ListQuery, mine bool) ([]attendance.Attendance, error) {
	query.Limit = upstreamPageLimit
	var records []attendance.Attendance

	for page := 1; page <= upstreamMaxPages; page++ {
		query.Page = page

		var (
			result attendance.ListResult
			err    error
		)
		if mine {
			result, err = a.ListMine(ctx, query)
		} else {
			result, err = a.List(ctx, query)
		}
		if err != nil {
			return nil, upstreamError(err)
		}

		records = append(records, result.Attendances...)
		if page >= result.TotalPages || len(result.Attendances) == 0 {
			break
		}
	}
	return records, nil
}

// upstreamError keeps backend answers (mapped by the response package) and
// turns transport failures into ErrUpstreamUnavailable
func upstreamError(err error) error {
	var apiErr *hrisapi.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("%w: %v", attendance.ErrUpstreamUnavailable, err)
}

// GetDebug implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDebug(ctx context.Context, id string) (attendance.DebugResponse, error) {
	record, err := a.GetByID(ctx, id)
	if err != nil {
		var apiErr *hrisapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return attendance.DebugResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.DebugResponse{}, upstreamError(err)
	}

	p := a.policy
	clockIn := a.debugTimestamp(record.ClockInTime)
	upstreamDate := dateOnly(record.Date)

	resp := attendance.DebugResponse{
		AttendanceID: record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		UpstreamDate: record.Date,
		ZonedDate:    clockIn.Date,
		DateMismatch: clockIn.Date != "" && upstreamDate != "" && clockIn.Date != upstreamDate,
		ClockIn:      clockIn,
		ClockOut:     a.debugTimestamp(record.ClockOutTime),
		Breaks:       make([]attendance.BreakDebug, 0, len(record.Breaks)),
		Timezone:     p.Descriptor(),
		ServerNow:    p.Now().Format(time.RFC3339),
	}
	for _, b := range record.Breaks {
		resp.Breaks = append(resp.Breaks, attendance.BreakDebug{
			Type:  b.Type,
			Start: a.debugTimestamp(b.StartTime),
			End:   a.debugTimestamp(b.EndTime),
		})
	}
	return resp, nil
}

func (a *AttendanceServiceImpl) debugTimestamp(i timepolicy.Instant) attendance.TimestampDebug {
	p := a.policy
	t := p.Resolve(i)
	d := attendance.TimestampDebug{
		Raw:   i.Raw(),
		Valid: !t.IsZero(),
		Time:  p.FormatTime(t),
	}
	if d.Valid {
		d.UTC = t.UTC().Format(time.RFC3339)
		d.Zoned = p.ToZoned(t).Format(time.RFC3339)
		d.Date = p.FormatDate(t)
		d.DisplayDate = p.FormatDisplayDate(t)
		d.IsToday = p.IsToday(t)
	}
	return d
}

// GetWeekSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWeekSummary(ctx context.Context, reference time.Time) (attendance.WeekSummary, error) {
	if _, err := jwt.EmployeeClaimsFromContext(ctx); err != nil {
		return attendance.WeekSummary{}, err
	}

	p := a.policy
	ref := p.EnsureDate(reference)
	weekStart, weekEnd := p.WeekStart(ref), p.WeekEnd(ref)

	records, err := a.fetchAll(ctx, attendance.ListQuery{
		StartDate: p.FormatDate(p.AddDays(weekStart, -1)),
		EndDate:   p.FormatDate(p.AddDays(weekEnd, 1)),
	}, true)
	if err != nil {
		return attendance.WeekSummary{}, err
	}

	days, totals := a.buildDays(records, p.FormatDate(weekStart), p.FormatDate(weekEnd))
	byDate := make(map[string]attendance.HistoryDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	summary := attendance.WeekSummary{
		WeekStart:     p.FormatDate(weekStart),
		WeekEnd:       p.FormatDate(weekEnd),
		RangeLabel:    fmt.Sprintf("%s - %s", p.FormatDisplayDate(weekStart), p.FormatDisplayDate(weekEnd)),
		Days:          make([]attendance.WeekDay, 0, 7),
		DaysPresent:   totals.DaysPresent,
		LateDays:      totals.LateDays,
		WorkedHours:   totals.WorkedHours,
		WorkedMinutes: totals.WorkedMinutes,
	}

	for i := 0; i < 7; i++ {
		date := p.AddDays(weekStart, i)
		key := p.FormatDate(date)
		wd := attendance.WeekDay{
			Date:     key,
			DayName:  p.DayName(date),
			IsToday:  p.IsToday(date),
			IsFuture: p.IsFuture(date),
			Worked:   timepolicy.PlaceholderHours,
		}
		if d, ok := byDate[key]; ok {
			wd.Present = isPresent(d)
			wd.Worked = d.Worked
			wd.WorkedMinutes = d.WorkedMinutes
			if wd.IsToday {
				today := d
				summary.Today = &today
			}
		}
		summary.Days = append(summary.Days, wd)
	}

	return summary, nil
}

// buildDays buckets records by the zoned civil date of clock-in and keeps the
// days within [fromKey, toKey], newest first
func (a *AttendanceServiceImpl) buildDays(records []attendance.Attendance, fromKey, toKey string) ([]attendance.HistoryDay, attendance.HistoryTotals) {
	buckets := make(map[string][]attendance.Attendance)
	for _, rec := range records {
		key := a.civilDate(rec)
		if key == "" || key < fromKey || key > toKey {
			continue
		}
		buckets[key] = append(buckets[key], rec)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	days := make([]attendance.HistoryDay, 0, len(keys))
	var totalWorked, totalBreak time.Duration
	totals := attendance.HistoryTotals{}

	for _, key := range keys {
		day, worked, breaks := a.buildDay(key, buckets[key])
		days = append(days, day)

		totalWorked += worked
		totalBreak += breaks
		if isPresent(day) {
			totals.DaysPresent++
		}
		if day.IsLate {
			totals.LateDays++
		}
	}

	totals.WorkedHours = timepolicy.FormatDuration(totalWorked)
	totals.WorkedMinutes = minutes(totalWorked)
	totals.TotalBreak = timepolicy.FormatDuration(totalBreak)
	return days, totals
}

func (a *AttendanceServiceImpl) buildDay(key string, records []attendance.Attendance) (attendance.HistoryDay, time.Duration, time.Duration) {
	p := a.policy
	date := p.ParseOrZero(key)

	sort.SliceStable(records, func(i, j int) bool {
		return p.Resolve(records[i].ClockInTime).Before(p.Resolve(records[j].ClockInTime))
	})

	day := attendance.HistoryDay{
		AttendanceIDs: make([]string, 0, len(records)),
		Date:          key,
		DayName:       p.DayName(date),
		DisplayDate:   p.FormatDisplayDate(date),
		IsToday:       p.IsToday(date),
		Breaks:        make([]attendance.BreakView, 0),
	}

	var firstIn, lastOut time.Time
	var worked, breakTotal time.Duration

	for _, rec := range records {
		day.AttendanceIDs = append(day.AttendanceIDs, rec.ID)
		in := p.Resolve(rec.ClockInTime)
		out := p.Resolve(rec.ClockOutTime)

		if !in.IsZero() && (firstIn.IsZero() || in.Before(firstIn)) {
			firstIn = in
		}
		if !out.IsZero() && out.After(lastOut) {
			lastOut = out
		}

		var recBreaks time.Duration
		for _, b := range rec.Breaks {
			view, d := a.breakView(b)
			day.Breaks = append(day.Breaks, view)
			recBreaks += d
		}
		breakTotal += recBreaks

		switch {
		case !in.IsZero() && !out.IsZero() && out.After(in):
			worked += max(out.Sub(in)-recBreaks, 0)
		case rec.WorkingHours != nil && *rec.WorkingHours > 0:
			worked += time.Duration(*rec.WorkingHours * float64(time.Hour))
		case !in.IsZero() && out.IsZero() && p.IsToday(in):
			day.InProgress = true
			worked += max(p.Now().Sub(in)-recBreaks, 0)
		}

		if rec.Late() {
			day.IsLate = true
			day.LateMinutes += rec.LateMinutesOrZero()
		}
		if day.Status == "" {
			day.Status = rec.Status
		}
	}

	day.ClockIn = p.FormatTime(firstIn)
	day.ClockOut = p.FormatTime(lastOut)
	if day.InProgress {
		day.ClockOut = timepolicy.PlaceholderTime
	}
	day.Worked = timepolicy.FormatDuration(worked)
	day.WorkedMinutes = minutes(worked)
	day.TotalBreak = timepolicy.FormatDuration(breakTotal)

	return day, worked, breakTotal
}

func (a *AttendanceServiceImpl) breakView(b attendance.Break) (attendance.BreakView, time.Duration) {
	p := a.policy
	start := p.Resolve(b.StartTime)
	end := p.Resolve(b.EndTime)

	view := attendance.BreakView{
		Type:     b.Type,
		Start:    p.FormatTime(start),
		End:      p.FormatTime(end),
		Duration: timepolicy.PlaceholderHours,
	}

	switch {
	case !start.IsZero() && !end.IsZero() && end.After(start):
		d := end.Sub(start)
		view.Duration = timepolicy.FormatDuration(d)
		return view, d
	case !start.IsZero() && b.EndTime.IsNull():
		view.InProgress = true
	}
	return view, 0
}

// civilDate is the zoned date of clock-in, falling back to the upstream date
func (a *AttendanceServiceImpl) civilDate(rec attendance.Attendance) string {
	if in := a.policy.Resolve(rec.ClockInTime); !in.IsZero() {
		return a.policy.FormatDate(in)
	}
	return dateOnly(rec.Date)
}

// dateOnly accepts "YYYY-MM-DD" or a timestamp whose first ten characters are one
func dateOnly(s string) string {
	if len(s) >= 10 {
		if _, ok := validator.IsValidDate(s[:10]); ok {
			return s[:10]
		}
	}
	return ""
}

func isPresent(d attendance.HistoryDay) bool {
	return d.ClockIn != timepolicy.PlaceholderTime || d.WorkedMinutes > 0
}

func minutes(d time.Duration) int64 {
	return int64(d.Round(time.Minute) / time.Minute)
}
