package attendance

import (
	"time"
)

// Status is the derived presence outcome of one shift assignment. It is never
// set directly by callers; transitions in the clock event processor own it.
type Status string

const (
	StatusPresent           Status = "PRESENT"
	StatusLate              Status = "LATE"
	StatusEarlyDeparture    Status = "EARLY_DEPARTURE"
	StatusAbsentJustified   Status = "ABSENT_JUSTIFIED"
	StatusAbsentUnjustified Status = "ABSENT_UNJUSTIFIED"
	StatusHalfDay           Status = "HALF_DAY"
)

// AllStatuses returns every valid status value.
func AllStatuses() []Status {
	return []Status{
		StatusPresent,
		StatusLate,
		StatusEarlyDeparture,
		StatusAbsentJustified,
		StatusAbsentUnjustified,
		StatusHalfDay,
	}
}

// IsValid reports whether s is one of the closed status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusEarlyDeparture,
		StatusAbsentJustified, StatusAbsentUnjustified, StatusHalfDay:
		return true
	}
	return false
}

// IsWorked reports whether the status counts as a worked day in reports.
func (s Status) IsWorked() bool {
	return s == StatusPresent || s == StatusLate
}

// Action is a clock event submitted against a shift assignment.
type Action string

const (
	ActionClockIn        Action = "clock_in"
	ActionClockOut       Action = "clock_out"
	ActionMarkAbsent     Action = "mark_absent"
	ActionJustifyAbsence Action = "justify_absence"
	ActionManualEntry    Action = "manual_entry"
)

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	switch a {
	case ActionClockIn, ActionClockOut, ActionMarkAbsent, ActionJustifyAbsence, ActionManualEntry:
		return true
	}
	return false
}

// Record is the single presence outcome of one shift assignment.
// At most one record exists per assignment; the persistence layer enforces
// the uniqueness with a constraint on ShiftAssignmentID.
type Record struct {
	ID                string
	ShiftAssignmentID string
	CompanyID         string
	ClockInTime       *time.Time
	ClockOutTime      *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	Status            Status
	MinutesLate       int
	MinutesEarly      int
	TotalMinutes      *int
	Justification     *string
	Notes             *string
	ClockedInBy       *string // nil when the subject clocked themself in
	ClockedOutBy      *string
	JustifiedBy       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / join
	UserID     *string
	ShiftStart *time.Time
	ShiftEnd   *time.Time
	ShiftTitle *string
}
