package attendance

import (
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// GeoPoint is a caller-supplied clock location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SubmitActionRequest struct {
	ShiftAssignmentID string    `json:"shift_assignment_id"`
	Action            Action    `json:"action"`
	Location          *GeoPoint `json:"location,omitempty"`
	Justification     *string   `json:"justification,omitempty"`
	Notes             *string   `json:"notes,omitempty"`

	// manual_entry only
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
}

func (r *SubmitActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftAssignmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_assignment_id",
			Message: "shift_assignment_id is required",
		})
	}

	if !r.Action.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of clock_in, clock_out, mark_absent, justify_absence, manual_entry",
		})
	}

	if r.Location != nil {
		if !validator.IsValidLatitude(r.Location.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(r.Location.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "location.longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if r.Action == ActionManualEntry {
		if r.ClockInTime == nil || validator.IsEmpty(*r.ClockInTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time is required for manual_entry",
			})
		} else if _, ok := validator.IsValidDateTime(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}

		if r.ClockOutTime == nil || validator.IsEmpty(*r.ClockOutTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time is required for manual_entry",
			})
		} else if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.Action == ActionJustifyAbsence {
		if r.Justification == nil || validator.IsEmpty(*r.Justification) {
			errs = append(errs, validator.ValidationError{
				Field:   "justification",
				Message: "justification is required for justify_absence",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualRange returns the parsed manual_entry instants. Validate must have
// passed first.
func (r *SubmitActionRequest) ManualRange() (in time.Time, out time.Time) {
	in, _ = time.Parse(time.RFC3339, *r.ClockInTime)
	out, _ = time.Parse(time.RFC3339, *r.ClockOutTime)
	return in, out
}

type RecordResponse struct {
	ID                string   `json:"id"`
	ShiftAssignmentID string   `json:"shift_assignment_id"`
	UserID            *string  `json:"user_id,omitempty"`
	ShiftTitle        *string  `json:"shift_title,omitempty"`
	ClockInTime       *string  `json:"clock_in_time,omitempty"`
	ClockOutTime      *string  `json:"clock_out_time,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	Status            Status   `json:"status"`
	MinutesLate       int      `json:"minutes_late"`
	MinutesEarly      int      `json:"minutes_early"`
	TotalMinutes      *int     `json:"total_minutes,omitempty"`
	Justification     *string  `json:"justification,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	ClockedInBy       *string  `json:"clocked_in_by,omitempty"`
	ClockedOutBy      *string  `json:"clocked_out_by,omitempty"`
	JustifiedBy       *string  `json:"justified_by,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type RecordFilter struct {
	Date              *string `json:"date,omitempty"` // YYYY-MM-DD, matched against the clock-in day
	UserID            *string `json:"user_id,omitempty"`
	Status            *string `json:"status,omitempty"`
	ShiftAssignmentID *string `json:"shift_assignment_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		if !Status(*f.Status).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status is not a known attendance status",
			})
		}
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
