package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/task"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	// Employee
	ListMine(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	SubmitProgress(w http.ResponseWriter, r *http.Request)

	// Manager
	Assign(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Analytics(w http.ResponseWriter, r *http.Request)
	ListSubmissions(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{
		taskService: taskService,
	}
}

// ListMine implements TaskHandler.
func (h *taskHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := task.MyTaskFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		Overdue:   queryBool(r, "overdue"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	resp, err := h.taskService.ListMyTasks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetMine implements TaskHandler.
func (h *taskHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.GetMyTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// MySummary implements TaskHandler.
func (h *taskHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.GetMySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// SubmitProgress implements TaskHandler.
func (h *taskHandlerImpl) SubmitProgress(w http.ResponseWriter, r *http.Request) {
	var req task.SubmitProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitProgress decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TaskID = chi.URLParam(r, "id")

	resp, err := h.taskService.SubmitProgress(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Progress submitted", resp)
}

// Assign implements TaskHandler.
func (h *taskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req task.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.taskService.AssignTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Task assigned", resp)
}

// List implements TaskHandler.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := task.TaskFilter{
		AssigneeID: q.Get("assignee_id"),
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Priority:   q.Get("priority"),
		Overdue:    queryBool(r, "overdue"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}

	resp, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Analytics implements TaskHandler.
func (h *taskHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskService.GetAnalytics(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListSubmissions implements TaskHandler.
func (h *taskHandlerImpl) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := task.SubmissionFilter{
		TaskID:     q.Get("task_id"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	resp, err := h.taskService.ListSubmissions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// Review implements TaskHandler.
func (h *taskHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	var req task.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewSubmission decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SubmissionID = chi.URLParam(r, "id")

	resp, err := h.taskService.ReviewSubmission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Submission reviewed", resp)
}
