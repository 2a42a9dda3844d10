package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
)

type TimeHandler interface {
	Now(w http.ResponseWriter, r *http.Request)
	Convert(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type timeHandlerImpl struct {
	calendarService calendar.CalendarService
	hub             *sse.Hub
	keepalive       time.Duration
}

func NewTimeHandler(calendarService calendar.CalendarService, hub *sse.Hub) TimeHandler {
	return &timeHandlerImpl{
		calendarService: calendarService,
		hub:             hub,
		keepalive:       30 * time.Second,
	}
}

// Now implements TimeHandler.
func (h *timeHandlerImpl) Now(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.calendarService.Now(r.Context()))
}

// Convert implements TimeHandler.
func (h *timeHandlerImpl) Convert(w http.ResponseWriter, r *http.Request) {
	resp, err := h.calendarService.Convert(r.Context(), r.URL.Query().Get("at"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Stream handles the SSE connection for clock events. A valid ?token joins
// the employee's channel; without one the client only receives broadcasts.
func (h *timeHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	key := ""
	if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
		key = claims.EmployeeID
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(key)
	defer cleanup()
	slog.Debug("Stream connected", "employee_id", key, "streams", h.hub.SubscriberCount(key))

	writeEvent(w, sse.EventConnected, h.calendarService.Now(r.Context()))
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeEvent(w, event.Event, event.Data)
			flusher.Flush()

		case <-keepalive.C:
			writeEvent(w, sse.EventPing, map[string]int64{"timestamp": time.Now().Unix()})
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode stream event", "event", event, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
