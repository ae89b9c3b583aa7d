package schedule

import (
	"context"
	"time"
)

// AssignmentFilter narrows ListInRange to one user and/or one department.
type AssignmentFilter struct {
	UserID       *string
	DepartmentID *string
}

// ShiftAssignmentRepository supplies scheduled shift windows to the attendance
// engine. All methods include companyID to prevent cross-company access.
type ShiftAssignmentRepository interface {
	// GetByID retrieves one assignment; returns ErrAssignmentNotFound when absent
	GetByID(ctx context.Context, id string, companyID string) (ShiftAssignment, error)

	// ListInRange retrieves assignments whose shift start falls within
	// [start, end], after filters. Used by the report aggregator.
	ListInRange(ctx context.Context, companyID string, start, end time.Time, filter AssignmentFilter) ([]ShiftAssignment, error)

	// Create registers an assignment on behalf of the scheduling flow
	Create(ctx context.Context, a ShiftAssignment) (ShiftAssignment, error)
}
