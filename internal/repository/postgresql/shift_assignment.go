package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

// GetByID implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) GetByID(ctx context.Context, id string, companyID string) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT sa.id, sa.user_id, sa.company_id,
			   sa.shift_title, sa.shift_starts_at, sa.shift_ends_at,
			   sa.created_at,
			   u.full_name AS user_name,
			   u.department_id
		FROM shift_assignments sa
		LEFT JOIN users u ON u.id = sa.user_id
		WHERE sa.id = $1 AND sa.company_id = $2
	`

	var a schedule.ShiftAssignment
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&a.ID, &a.UserID, &a.CompanyID,
		&a.Shift.Title, &a.Shift.StartsAt, &a.Shift.EndsAt,
		&a.CreatedAt,
		&a.UserName,
		&a.DepartmentID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftAssignment{}, schedule.ErrAssignmentNotFound
		}
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to get shift assignment by ID: %w", err)
	}

	return a, nil
}

// ListInRange implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) ListInRange(ctx context.Context, companyID string, start, end time.Time, filter schedule.AssignmentFilter) ([]schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, s.db)

	whereClause := "WHERE sa.company_id = $1 AND sa.shift_starts_at BETWEEN $2 AND $3"
	args := []interface{}{companyID, start, end}
	argIndex := 4

	if filter.UserID != nil && *filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND sa.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		whereClause += fmt.Sprintf(" AND u.department_id = $%d", argIndex)
		args = append(args, *filter.DepartmentID)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT sa.id, sa.user_id, sa.company_id,
			   sa.shift_title, sa.shift_starts_at, sa.shift_ends_at,
			   sa.created_at,
			   u.full_name AS user_name,
			   u.department_id
		FROM shift_assignments sa
		LEFT JOIN users u ON u.id = sa.user_id
		%s
		ORDER BY sa.shift_starts_at ASC, sa.id ASC
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.ShiftAssignment
	for rows.Next() {
		var a schedule.ShiftAssignment
		err := rows.Scan(
			&a.ID, &a.UserID, &a.CompanyID,
			&a.Shift.Title, &a.Shift.StartsAt, &a.Shift.EndsAt,
			&a.CreatedAt,
			&a.UserName,
			&a.DepartmentID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// Create implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) Create(ctx context.Context, a schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_assignments (
			id, user_id, company_id, shift_title, shift_starts_at, shift_ends_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		a.ID,
		a.UserID,
		a.CompanyID,
		a.Shift.Title,
		a.Shift.StartsAt,
		a.Shift.EndsAt,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

func NewShiftAssignmentRepository(db *database.DB) schedule.ShiftAssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}
