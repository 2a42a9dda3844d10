package calendar

import "context"

type CalendarService interface {
	// Now describes the current moment
	Now(ctx context.Context) TimeSnapshot

	// Convert shows every projection of one timestamp
	Convert(ctx context.Context, at string) (ConversionResponse, error)

	// GetMonth builds the month grid (YYYY-MM, default current month)
	GetMonth(ctx context.Context, month string) (MonthResponse, error)
}
