package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
)

type CalendarHandler interface {
	Month(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

// Month implements CalendarHandler.
func (h *calendarHandlerImpl) Month(w http.ResponseWriter, r *http.Request) {
	resp, err := h.calendarService.GetMonth(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
