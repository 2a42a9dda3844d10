package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
)

// MidnightSpec fires at 00:00 in the scheduler's location
const MidnightSpec = "0 0 * * *"

const JobDayRollover = "day_rollover"

type Broadcaster interface {
	Broadcast(event sse.Event)
	TotalSubscribers() int
}

// DemoResetter rebuilds demo data so relative deadlines follow the new day
type DemoResetter interface {
	Reset(ctx context.Context) (int, error)
}

type DayRolloverJobs struct {
	calendar calendar.CalendarService
	hub      Broadcaster
	demo     DemoResetter
}

// NewDayRolloverJobs wires the midnight job. demo may be nil.
func NewDayRolloverJobs(calendarService calendar.CalendarService, hub Broadcaster, demo DemoResetter) *DayRolloverJobs {
	return &DayRolloverJobs{
		calendar: calendarService,
		hub:      hub,
		demo:     demo,
	}
}

func (j *DayRolloverJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob(JobDayRollover, MidnightSpec, j.RollOver)
}

// RollOver resets demo data (when enabled) and then tells open screens the day changed
func (j *DayRolloverJobs) RollOver(ctx context.Context) error {
	if j.demo != nil {
		if _, err := j.demo.Reset(ctx); err != nil {
			return fmt.Errorf("demo reset failed: %w", err)
		}
	}

	snapshot := j.calendar.Now(ctx)
	j.hub.Broadcast(sse.Event{Event: sse.EventDayChanged, Data: snapshot})

	slog.Info("Cron: day rollover announced", "date", snapshot.Date, "timezone", snapshot.Timezone.Abbreviation, "listeners", j.hub.TotalSubscribers())
	return nil
}
