package report

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/report"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
)

type ReportServiceImpl struct {
	attendance.RecordRepository
	schedule.ShiftAssignmentRepository
}

func NewReportService(
	recordRepo attendance.RecordRepository,
	assignmentRepo schedule.ShiftAssignmentRepository,
) report.ReportService {
	return &ReportServiceImpl{
		RecordRepository:          recordRepo,
		ShiftAssignmentRepository: assignmentRepo,
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// GenerateAttendanceReport implements report.ReportService. A pure read over
// assignments and records in range; identical inputs always produce the same
// report.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	start, end := req.Range()

	assignments, err := s.ShiftAssignmentRepository.ListInRange(ctx, companyID, start, end, schedule.AssignmentFilter{
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	records, err := s.RecordRepository.ListInRange(ctx, companyID, start, end, req.UserID, req.DepartmentID)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return buildReport(req, assignments, records), nil
}

// roundRate computes round(100 * part / whole), 0 when whole is zero.
func roundRate(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// roundHours converts minutes to whole hours, rounding halves up.
func roundHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60))
}

// recordDay returns the calendar date a record counts toward: the clock-in day
// when one exists, else the scheduled shift start day for clock-less absences.
func recordDay(rec attendance.Record) string {
	if rec.ClockInTime != nil {
		return rec.ClockInTime.Format("2006-01-02")
	}
	if rec.ShiftStart != nil {
		return rec.ShiftStart.Format("2006-01-02")
	}
	return ""
}

func buildReport(req report.AttendanceReportRequest, assignments []schedule.ShiftAssignment, records []attendance.Record) report.AttendanceReport {
	summary := report.Summary{
		TotalExpectedDays: len(assignments),
	}

	expectedByUser := make(map[string]int)
	expectedMinutes := 0
	daily := make(map[string]*report.DailyBreakdown)

	dayEntry := func(date string) *report.DailyBreakdown {
		d, ok := daily[date]
		if !ok {
			d = &report.DailyBreakdown{Date: date}
			daily[date] = d
		}
		return d
	}

	for _, a := range assignments {
		expectedByUser[a.UserID]++
		expectedMinutes += a.ScheduledMinutes()
		dayEntry(a.Shift.StartsAt.Format("2006-01-02")).TotalExpected++
	}
	summary.TotalExpectedHours = roundHours(expectedMinutes)

	userStats := make(map[string]*report.UserStats)
	var userOrder []string

	for _, rec := range records {
		var userID string
		if rec.UserID != nil {
			userID = *rec.UserID
		}

		stats, ok := userStats[userID]
		if !ok {
			stats = &report.UserStats{UserID: userID}
			userStats[userID] = stats
			userOrder = append(userOrder, userID)
		}
		stats.TotalDays++

		day := dayEntry(recordDay(rec))

		switch rec.Status {
		case attendance.StatusPresent:
			summary.TotalWorkedDays++
			summary.OnTimeDays++
			stats.PresentDays++
			day.Present++
		case attendance.StatusLate:
			summary.TotalWorkedDays++
			summary.LateDays++
			stats.LateDays++
			stats.TotalLateMinutes += rec.MinutesLate
			day.Late++
		case attendance.StatusEarlyDeparture:
			summary.EarlyDepartureDays++
			stats.EarlyDeparture++
			day.EarlyDeparture++
		case attendance.StatusAbsentJustified:
			summary.AbsentJustifiedDays++
			stats.AbsentJustified++
			day.AbsentJustified++
		case attendance.StatusAbsentUnjustified:
			summary.AbsentUnjustifiedDays++
			stats.AbsentUnjustified++
			day.AbsentUnjustified++
		case attendance.StatusHalfDay:
			summary.HalfDays++
			stats.HalfDays++
			day.HalfDay++
		}

		if rec.TotalMinutes != nil {
			stats.TotalMinutesWorked += *rec.TotalMinutes
		}
	}

	totalWorkedMinutes := 0
	for _, stats := range userStats {
		totalWorkedMinutes += stats.TotalMinutesWorked
	}
	summary.TotalHoursWorked = roundHours(totalWorkedMinutes)

	summary.AttendanceRate = roundRate(summary.TotalWorkedDays, summary.TotalExpectedDays)
	summary.PunctualityRate = roundRate(summary.OnTimeDays, summary.TotalWorkedDays)
	summary.CoverageRate = roundRate(summary.TotalWorkedDays+summary.AbsentJustifiedDays, summary.TotalExpectedDays)

	stats := make([]report.UserStats, 0, len(userOrder))
	sort.Strings(userOrder)
	for _, userID := range userOrder {
		u := userStats[userID]
		u.ExpectedDays = expectedByUser[userID]
		u.TotalHoursWorked = roundHours(u.TotalMinutesWorked)

		worked := u.PresentDays + u.LateDays
		u.AttendanceRate = roundRate(worked, u.ExpectedDays)
		// Punctuality is relative to the user's days with a record, not their
		// expected days.
		u.PunctualityRate = roundRate(u.PresentDays, u.TotalDays)

		if u.LateDays > 0 {
			u.AvgLateMinutes = int(math.Round(float64(u.TotalLateMinutes) / float64(u.LateDays)))
		}

		stats = append(stats, *u)
	}

	breakdown := make([]report.DailyBreakdown, 0, len(daily))
	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		breakdown = append(breakdown, *daily[date])
	}

	return report.AttendanceReport{
		Period: report.ReportPeriod{
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		Summary:        summary,
		UserStats:      stats,
		DailyBreakdown: breakdown,
	}
}
