package schedule

import (
	"context"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	UserID     string `json:"user_id"`
	ShiftTitle string `json:"shift_title"`
	StartsAt   string `json:"starts_at"` // RFC3339
	EndsAt     string `json:"ends_at"`   // RFC3339
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.ShiftTitle) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_title",
			Message: "shift_title is required",
		})
	}

	startsAt, startOK := validator.IsValidDateTime(r.StartsAt)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "starts_at",
			Message: "starts_at must be an RFC3339 timestamp",
		})
	}

	endsAt, endOK := validator.IsValidDateTime(r.EndsAt)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be an RFC3339 timestamp",
		})
	}

	if startOK && endOK && !endsAt.After(startsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be after starts_at",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the parsed shift window. Validate must have passed first.
func (r *CreateAssignmentRequest) Window() (startsAt, endsAt time.Time) {
	startsAt, _ = time.Parse(time.RFC3339, r.StartsAt)
	endsAt, _ = time.Parse(time.RFC3339, r.EndsAt)
	return startsAt, endsAt
}

type ListAssignmentsRequest struct {
	StartDate    string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD, inclusive
	UserID       *string `json:"user_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}

func (r *ListAssignmentsRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed inclusive period. Validate must have passed first.
func (r *ListAssignmentsRequest) Range() (start, end time.Time) {
	start, _ = time.Parse("2006-01-02", r.StartDate)
	end, _ = time.Parse("2006-01-02", r.EndDate)
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

type AssignmentResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	ShiftTitle   string  `json:"shift_title"`
	StartsAt     string  `json:"starts_at"`
	EndsAt       string  `json:"ends_at"`
	CreatedAt    string  `json:"created_at"`
}

// ScheduleService manages shift assignments on behalf of the scheduling flow.
type ScheduleService interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	Get(ctx context.Context, id string) (AssignmentResponse, error)
	List(ctx context.Context, req ListAssignmentsRequest) ([]AssignmentResponse, error)
}
