package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// HRIS backend answered with an error
	var apiErr *hrisapi.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			Upstream(w, apiErr.StatusCode, apiErr.Code, apiErr.Message)
		default:
			slog.Error("HRIS backend error", "status", apiErr.StatusCode, "code", apiErr.Code, "message", apiErr.Message)
			BadGateway(w, "HRIS backend returned an error")
		}
		return
	}

	switch {
	// Identity
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Time input
	case errors.Is(err, timepolicy.ErrEmptyInput), errors.Is(err, timepolicy.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, calendar.ErrInvalidMonth), errors.Is(err, calendar.ErrInvalidInstant):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrInvalidDateRange), errors.Is(err, attendance.ErrDateRangeTooLong):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrUpstreamUnavailable):
		slog.Error("HRIS backend unreachable", "error", err)
		BadGateway(w, "HRIS backend is unavailable")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrSubmissionNotFound):
		NotFound(w, "Submission not found")
	case errors.Is(err, task.ErrAssigneeNotFound):
		NotFound(w, "Assignee not found")
	case errors.Is(err, task.ErrNotTaskAssignee):
		Forbidden(w, err.Error())
	case errors.Is(err, task.ErrTaskAlreadyCompleted), errors.Is(err, task.ErrSubmissionAlreadyReviewed):
		Conflict(w, err.Error())
	case errors.Is(err, task.ErrDeadlineInPast), errors.Is(err, task.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
