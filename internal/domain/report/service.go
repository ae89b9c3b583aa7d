package report

import "context"

// ReportService generates attendance statistics over a date range.
// Generation is a pure read: it never mutates records, and the same inputs
// always produce the same report.
type ReportService interface {
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
}
