package schedule

import "time"

// Shift is the scheduled work window of one assignment.
type Shift struct {
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
}

// ShiftAssignment pairs one user with one shift occurrence. Owned by the
// scheduling subsystem; immutable from the attendance engine's perspective.
type ShiftAssignment struct {
	ID        string
	UserID    string
	CompanyID string
	Shift     Shift
	CreatedAt time.Time

	// DTO / join
	UserName     *string
	DepartmentID *string
}

// ScheduledMinutes returns the scheduled shift duration in minutes.
func (a ShiftAssignment) ScheduledMinutes() int {
	return int(a.Shift.EndsAt.Sub(a.Shift.StartsAt).Minutes())
}
