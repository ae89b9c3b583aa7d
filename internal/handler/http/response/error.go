package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence rejections carry the measured distance.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this shift assignment")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out for this shift assignment")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No clock-in exists for this shift assignment")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "A GPS location is required to clock in or out", nil)
	case errors.Is(err, attendance.ErrInvalidClockRange):
		BadRequest(w, "Clock-out time must be after clock-in time", nil)
	case errors.Is(err, attendance.ErrActionForbidden):
		Forbidden(w, "Not allowed to perform this action on this assignment")
	case errors.Is(err, attendance.ErrSelfServiceDisabled):
		Forbidden(w, "Self-service attendance actions are disabled for this company")
	case errors.Is(err, attendance.ErrManagerOnly):
		Forbidden(w, "This action requires a manager role")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
