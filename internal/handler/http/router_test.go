package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/hrisapi"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/timepolicy"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-portal-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/hris-portal-go/internal/service/calendar"
	dashboardService "github.com/cmlabs-hris/hris-portal-go/internal/service/dashboard"
	taskService "github.com/cmlabs-hris/hris-portal-go/internal/service/task"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	routerTestSecret = "test-secret-key-for-jwt"
	testEmployeeID   = "0190b1a2-3c4d-7e5f-8a6b-000000000001"
	testManagerID    = "0190b1a2-3c4d-7e5f-8a6b-00000000000a"
)

// Monday 2024-07-15 12:00 EDT
var fixedNow = time.Date(2024, 7, 15, 16, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router       *chi.Mux
	jwtService   jwt.Service
	hub          *sse.Hub
	upstream     *httptest.Server
	upstreamCode atomic.Int32
	lastAuth     atomic.Value
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{jwtService: jwt.NewJWTService(routerTestSecret), hub: sse.NewHub()}
	ts.upstreamCode.Store(http.StatusOK)
	ts.lastAuth.Store("")

	ts.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.lastAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		code := int(ts.upstreamCode.Load())
		if code != http.StatusOK {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UPSTREAM","message":"upstream failed"}}`))
			return
		}

		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/employees/"):
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"x","full_name":"Fox Mulder"}}`))
		case r.URL.Path == "/api/v1/attendance/my":
			_, _ = w.Write([]byte(`{"success":true,"data":{"total_count":1,"page":1,"limit":100,"total_pages":1,"attendances":[
				{"id":"att-1","employee_id":"` + testEmployeeID + `","employee_name":"Fox Mulder","date":"2024-07-15",
				 "clock_in_time":"2024-07-15T13:00:00Z","clock_out_time":null,"status":"present"}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"not found"}}`))
		}
	}))
	t.Cleanup(ts.upstream.Close)

	p, err := timepolicy.New(timepolicy.DefaultZone, timepolicy.WithClock(timepolicy.ClockFunc(func() time.Time { return fixedNow })))
	require.NoError(t, err)

	client := hrisapi.NewClient(ts.upstream.URL, hrisapi.WithHTTPClient(ts.upstream.Client()))
	repo := memory.NewTaskRepository()

	calendarSvc := calendarService.NewCalendarService(p, repo)
	attendanceSvc := attendanceService.NewAttendanceService(p, client)
	taskSvc := taskService.NewTaskService(p, repo, client, taskService.WithPublisher(ts.hub))
	dashboardSvc := dashboardService.NewDashboardService(p, attendanceSvc, taskSvc, calendarSvc)

	ts.router = NewRouter(
		RouterConfig{Env: "test", Version: "test", FrontendURL: "http://localhost:3000"},
		ts.jwtService,
		NewTimeHandler(calendarSvc, ts.hub),
		NewAttendanceHandler(attendanceSvc),
		NewTaskHandler(taskSvc),
		NewCalendarHandler(calendarSvc),
		NewDashboardHandler(dashboardSvc),
	)
	return ts
}

func (ts *testServer) token(t *testing.T, role user.Role, employeeID string) string {
	t.Helper()
	token, _, err := ts.jwtService.GenerateAccessToken(user.Claims{
		UserID: "user-" + employeeID, EmployeeID: employeeID, CompanyID: "company-1", Role: role,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestTimeEndpoints(t *testing.T) {
	ts := newTestServer(t)

	code, env := ts.do(t, http.MethodGet, "/api/v1/time", "", "")
	require.Equal(t, http.StatusOK, code)
	var now struct {
		Date     string `json:"date"`
		Time     string `json:"time"`
		Timezone struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"timezone"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &now))
	assert.Equal(t, "2024-07-15", now.Date)
	assert.Equal(t, "12:00", now.Time)
	assert.Equal(t, "EDT", now.Timezone.Abbreviation)

	code, env = ts.do(t, http.MethodGet, "/api/v1/time/convert?at=2024-07-04T03:30:00Z", "", "")
	require.Equal(t, http.StatusOK, code)
	var conv struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &conv))
	assert.Equal(t, "2024-07-03", conv.Date)
	assert.Equal(t, "23:30", conv.Time)

	code, env = ts.do(t, http.MethodGet, "/api/v1/time/convert", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "at")
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodGet, "/api/v1/my-tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/my-tasks", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	other := jwt.NewJWTService("another-secret")
	forged, _, err := other.GenerateAccessToken(user.Claims{UserID: "u", EmployeeID: testEmployeeID, Role: user.RoleOwner}, time.Hour)
	require.NoError(t, err)
	code, _ = ts.do(t, http.MethodGet, "/api/v1/my-tasks", forged, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRolePermissions(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee, testEmployeeID)
	pending := ts.token(t, user.RolePending, "")

	code, _ := ts.do(t, http.MethodGet, "/api/v1/tasks", employee, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/att-1/debug", employee, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/my-tasks", pending, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestTaskFlow(t *testing.T) {
	ts := newTestServer(t)
	manager := ts.token(t, user.RoleManager, testManagerID)
	employee := ts.token(t, user.RoleEmployee, testEmployeeID)

	events, cleanup := ts.hub.Subscribe(testEmployeeID)
	defer cleanup()

	code, env := ts.do(t, http.MethodPost, "/api/v1/tasks", manager,
		`{"title":"Quarterly report","assignee_id":"`+testEmployeeID+`","priority":"high","deadline":"2024-07-16T17:00"}`)
	require.Equal(t, http.StatusCreated, code, env.Error)
	var created struct {
		ID           string `json:"id"`
		AssigneeName string `json:"assignee_name"`
		DeadlineDate string `json:"deadline_date"`
		DueLabel     string `json:"due_label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Fox Mulder", created.AssigneeName)
	assert.Equal(t, "2024-07-16", created.DeadlineDate)
	assert.Equal(t, "Due tomorrow", created.DueLabel)
	assert.Equal(t, "Bearer "+manager, ts.lastAuth.Load())

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventTaskAssigned, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("no task_assigned event")
	}

	code, env = ts.do(t, http.MethodPost, "/api/v1/tasks", manager,
		`{"title":"Too late","assignee_id":"`+testEmployeeID+`","deadline":"2024-07-01T09:00"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = ts.do(t, http.MethodGet, "/api/v1/my-tasks?sort_by=deadline", employee, "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		TotalCount int64 `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.TotalCount)

	code, env = ts.do(t, http.MethodPost, "/api/v1/my-tasks/"+created.ID+"/submissions", employee, `{"progress":100,"note":"done"}`)
	require.Equal(t, http.StatusCreated, code)
	var submission struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &submission))
	assert.Equal(t, "pending", submission.Status)

	code, _ = ts.do(t, http.MethodPost, "/api/v1/my-tasks/"+created.ID+"/submissions", employee, `{"progress":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = ts.do(t, http.MethodPost, "/api/v1/tasks/submissions/"+submission.ID+"/review", manager, `{"action":"reject"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "note")

	code, _ = ts.do(t, http.MethodPost, "/api/v1/tasks/submissions/"+submission.ID+"/review", manager, `{"action":"approve"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, http.MethodPost, "/api/v1/tasks/submissions/"+submission.ID+"/review", manager, `{"action":"approve"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/my-tasks/missing", employee, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = ts.do(t, http.MethodGet, "/api/v1/tasks/analytics?month=2024-07", manager, "")
	require.Equal(t, http.StatusOK, code)
	var analytics struct {
		CompletionRateLabel string `json:"completion_rate_label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &analytics))
	assert.Equal(t, "100.0%", analytics.CompletionRateLabel)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/tasks/analytics?month=July", manager, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAttendanceHistory(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee, testEmployeeID)

	code, env := ts.do(t, http.MethodGet, "/api/v1/attendance/history", employee, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bearer "+employee, ts.lastAuth.Load())

	var history struct {
		StartDate string `json:"start_date"`
		Days      []struct {
			Date       string `json:"date"`
			ClockIn    string `json:"clock_in"`
			InProgress bool   `json:"in_progress"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Equal(t, "2024-07-14", history.StartDate)
	require.Len(t, history.Days, 1)
	assert.Equal(t, "09:00", history.Days[0].ClockIn)
	assert.True(t, history.Days[0].InProgress)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/attendance/history?start_date=2024-07-10&end_date=2024-07-01", employee, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpstreamErrors(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee, testEmployeeID)

	ts.upstreamCode.Store(http.StatusUnauthorized)
	code, env := ts.do(t, http.MethodGet, "/api/v1/attendance/history", employee, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UPSTREAM", env.Error.Code)

	ts.upstreamCode.Store(http.StatusInternalServerError)
	code, env = ts.do(t, http.MethodGet, "/api/v1/attendance/history", employee, "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "BAD_GATEWAY", env.Error.Code)

	// The dashboard degrades instead of failing
	code, env = ts.do(t, http.MethodGet, "/api/v1/my-dashboard", employee, "")
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		AttendanceError string `json:"attendance_error"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.NotEmpty(t, dash.AttendanceError)
}

func TestCalendar(t *testing.T) {
	ts := newTestServer(t)
	employee := ts.token(t, user.RoleEmployee, testEmployeeID)

	code, env := ts.do(t, http.MethodGet, "/api/v1/calendar?month=2024-02", employee, "")
	require.Equal(t, http.StatusOK, code)
	var month struct {
		DaysInMonth  int `json:"days_in_month"`
		FirstWeekday int `json:"first_weekday"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &month))
	assert.Equal(t, 29, month.DaysInMonth)
	assert.Equal(t, 4, month.FirstWeekday)

	code, _ = ts.do(t, http.MethodGet, "/api/v1/calendar?month=2024-13", employee, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTimeStream(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token := ts.token(t, user.RoleEmployee, testEmployeeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/time/stream?token="+token, nil)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		_, err = reader.ReadString('\n') // data
		require.NoError(t, err)
		_, err = reader.ReadString('\n') // blank
		require.NoError(t, err)
		return strings.TrimSpace(strings.TrimPrefix(line, "event:"))
	}

	assert.Equal(t, sse.EventConnected, readEvent())

	require.Eventually(t, func() bool { return ts.hub.SubscriberCount(testEmployeeID) == 1 }, time.Second, 10*time.Millisecond)
	ts.hub.Publish(testEmployeeID, sse.Event{Event: sse.EventDayChanged, Data: map[string]string{"date": "2024-07-16"}})
	assert.Equal(t, sse.EventDayChanged, readEvent())
}
