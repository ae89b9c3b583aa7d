package report

import (
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE REPORT
// ========================================

type AttendanceReportRequest struct {
	StartDate    string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	}

	if r.StartDate != "" && r.EndDate != "" {
		startDate, startOK := validator.IsValidDate(r.StartDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}

		endDate, endOK := validator.IsValidDate(r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}

		if startOK && endOK && startDate.After(endDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed inclusive period as start-of-day and end-of-day
// instants. Validate must have passed first.
func (r *AttendanceReportRequest) Range() (start, end time.Time) {
	start, _ = time.Parse("2006-01-02", r.StartDate)
	end, _ = time.Parse("2006-01-02", r.EndDate)
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

type AttendanceReport struct {
	Period         ReportPeriod     `json:"period"`
	Summary        Summary          `json:"summary"`
	UserStats      []UserStats      `json:"user_stats"`
	DailyBreakdown []DailyBreakdown `json:"daily_breakdown"`
}

type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Summary struct {
	TotalExpectedDays     int `json:"total_expected_days"`
	TotalWorkedDays       int `json:"total_worked_days"`
	OnTimeDays            int `json:"on_time_days"`
	LateDays              int `json:"late_days"`
	AbsentJustifiedDays   int `json:"absent_justified_days"`
	AbsentUnjustifiedDays int `json:"absent_unjustified_days"`
	HalfDays              int `json:"half_days"`
	EarlyDepartureDays    int `json:"early_departure_days"`
	TotalHoursWorked      int `json:"total_hours_worked"`
	TotalExpectedHours    int `json:"total_expected_hours"`
	AttendanceRate        int `json:"attendance_rate"`
	PunctualityRate       int `json:"punctuality_rate"`
	CoverageRate          int `json:"coverage_rate"`
}

type UserStats struct {
	UserID             string `json:"user_id"`
	PresentDays        int    `json:"present_days"`
	LateDays           int    `json:"late_days"`
	AbsentJustified    int    `json:"absent_justified"`
	AbsentUnjustified  int    `json:"absent_unjustified"`
	HalfDays           int    `json:"half_days"`
	EarlyDeparture     int    `json:"early_departure"`
	TotalDays          int    `json:"total_days"` // days with a record
	ExpectedDays       int    `json:"expected_days"`
	TotalMinutesWorked int    `json:"total_minutes_worked"`
	TotalLateMinutes   int    `json:"total_late_minutes"`
	TotalHoursWorked   int    `json:"total_hours_worked"`
	AvgLateMinutes     int    `json:"avg_late_minutes"`
	AttendanceRate     int    `json:"attendance_rate"`
	PunctualityRate    int    `json:"punctuality_rate"`
}

type DailyBreakdown struct {
	Date              string `json:"date"` // YYYY-MM-DD
	TotalExpected     int    `json:"total_expected"`
	Present           int    `json:"present"`
	Late              int    `json:"late"`
	EarlyDeparture    int    `json:"early_departure"`
	AbsentJustified   int    `json:"absent_justified"`
	AbsentUnjustified int    `json:"absent_unjustified"`
	HalfDay           int    `json:"half_day"`
}
