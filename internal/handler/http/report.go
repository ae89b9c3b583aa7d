package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/report"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GenerateAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GenerateAttendanceReport implements ReportHandler.
func (h *reportHandlerImpl) GenerateAttendanceReport(w http.ResponseWriter, r *http.Request) {
	var req report.AttendanceReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode report request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
