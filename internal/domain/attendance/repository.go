package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type RecordRepository interface {
	// Create inserts a new record. The shift_assignment_id unique constraint
	// is the arbiter for concurrent creations: the loser gets
	// ErrAlreadyClockedIn instead of silently overwriting.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a record by id with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByAssignment retrieves the record for one shift assignment;
	// ErrRecordNotFound when none exists yet
	GetByAssignment(ctx context.Context, shiftAssignmentID string, companyID string) (Record, error)

	// Update persists field changes of an existing record
	Update(ctx context.Context, rec Record) error

	// Upsert creates or replaces the record for an assignment, keyed by the
	// unique constraint. Used by mark_absent.
	Upsert(ctx context.Context, rec Record) (Record, error)

	// List retrieves records with filters and pagination, newest first
	List(ctx context.Context, filter RecordFilter, companyID string) ([]Record, int64, error)

	// ListInRange retrieves records joined with their assignment's schedule,
	// for the report aggregator: records whose clock-in or scheduled shift
	// start falls within [start, end].
	ListInRange(ctx context.Context, companyID string, start, end time.Time, userID, departmentID *string) ([]Record, error)
}

// ClockEventService is the state machine over attendance records.
type ClockEventService interface {
	// Submit validates and applies one clock event against a shift assignment
	Submit(ctx context.Context, req SubmitActionRequest) (RecordResponse, error)

	// Get retrieves a single record by id
	Get(ctx context.Context, id string) (RecordResponse, error)

	// List retrieves records with filters (admin/manager view)
	List(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}
