package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Clock event errors
	ErrAlreadyClockedIn  = errors.New("already clocked in for this shift assignment")
	ErrAlreadyClockedOut = errors.New("already clocked out for this shift assignment")
	ErrNotClockedIn      = errors.New("not clocked in for this shift assignment")
	ErrLocationRequired  = errors.New("location is required by company policy")
	ErrInvalidClockRange = errors.New("clock-out time must be after clock-in time")

	// Permission errors
	ErrActionForbidden     = errors.New("not allowed to submit attendance for this assignment")
	ErrSelfServiceDisabled = errors.New("self-service attendance actions are disabled for this company")
	ErrManagerOnly         = errors.New("this action requires a manager role")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

// OutOfRangeError reports a failed geofence check, carrying the measured
// distance and the configured limit so callers can render a usable message.
type OutOfRangeError struct {
	DistanceMeters float64
	LimitMeters    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("outside the allowed radius: %.0fm from the company location, limit is %dm",
		e.DistanceMeters, e.LimitMeters)
}
