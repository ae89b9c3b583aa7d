package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SubmitAction(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	clockEventService attendance.ClockEventService
}

func NewAttendanceHandler(clockEventService attendance.ClockEventService) AttendanceHandler {
	return &attendanceHandlerImpl{
		clockEventService: clockEventService,
	}
}

// SubmitAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitAction(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode attendance action request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.clockEventService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Action == attendance.ActionClockIn {
		response.Created(w, "Clock in recorded", result)
		return
	}
	response.SuccessWithMessage(w, "Attendance action recorded", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{
		Page:  getIntQueryParam(r, "page", 0),
		Limit: getIntQueryParam(r, "limit", 0),
	}

	if v := r.URL.Query().Get("date"); v != "" {
		filter.Date = &v
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("shift_assignment_id"); v != "" {
		filter.ShiftAssignmentID = &v
	}

	result, err := h.clockEventService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance record ID is required", nil)
		return
	}

	result, err := h.clockEventService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
