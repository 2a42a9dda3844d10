package calendar

import "errors"

var (
	ErrInvalidMonth   = errors.New("month must be in YYYY-MM format")
	ErrInvalidInstant = errors.New("at must be an ISO8601 timestamp, YYYY-MM-DD[THH:MM] or epoch milliseconds")
)
