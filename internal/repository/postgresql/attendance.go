package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type attendanceRecordRepository struct {
	db *database.DB
}

const recordColumns = `
	r.id, r.shift_assignment_id, r.company_id,
	r.clock_in_time, r.clock_out_time,
	r.clock_in_latitude, r.clock_in_longitude,
	r.clock_out_latitude, r.clock_out_longitude,
	r.status, r.minutes_late, r.minutes_early, r.total_minutes,
	r.justification, r.notes,
	r.clocked_in_by, r.clocked_out_by, r.justified_by,
	r.created_at, r.updated_at,
	sa.user_id, sa.shift_starts_at, sa.shift_ends_at, sa.shift_title`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.ShiftAssignmentID, &rec.CompanyID,
		&rec.ClockInTime, &rec.ClockOutTime,
		&rec.ClockInLatitude, &rec.ClockInLongitude,
		&rec.ClockOutLatitude, &rec.ClockOutLongitude,
		&rec.Status, &rec.MinutesLate, &rec.MinutesEarly, &rec.TotalMinutes,
		&rec.Justification, &rec.Notes,
		&rec.ClockedInBy, &rec.ClockedOutBy, &rec.JustifiedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserID, &rec.ShiftStart, &rec.ShiftEnd, &rec.ShiftTitle,
	)
	return rec, err
}

// Create implements attendance.RecordRepository. The unique constraint on
// shift_assignment_id decides concurrent creations: with DO NOTHING the losing
// insert returns no row, which maps to ErrAlreadyClockedIn.
func (a *attendanceRecordRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, shift_assignment_id, company_id,
			clock_in_time, clock_out_time,
			clock_in_latitude, clock_in_longitude,
			clock_out_latitude, clock_out_longitude,
			status, minutes_late, minutes_early, total_minutes,
			justification, notes,
			clocked_in_by, clocked_out_by, justified_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		ON CONFLICT (shift_assignment_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.ShiftAssignmentID,
		rec.CompanyID,
		rec.ClockInTime,
		rec.ClockOutTime,
		rec.ClockInLatitude,
		rec.ClockInLongitude,
		rec.ClockOutLatitude,
		rec.ClockOutLongitude,
		rec.Status,
		rec.MinutesLate,
		rec.MinutesEarly,
		rec.TotalMinutes,
		rec.Justification,
		rec.Notes,
		rec.ClockedInBy,
		rec.ClockedOutBy,
		rec.JustifiedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows || database.IsUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRecordRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		JOIN shift_assignments sa ON sa.id = r.shift_assignment_id
		WHERE r.id = $1 AND r.company_id = $2
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByAssignment implements attendance.RecordRepository.
func (a *attendanceRecordRepository) GetByAssignment(ctx context.Context, shiftAssignmentID string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		JOIN shift_assignments sa ON sa.id = r.shift_assignment_id
		WHERE r.shift_assignment_id = $1 AND r.company_id = $2
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, shiftAssignmentID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by assignment: %w", err)
	}

	return rec, nil
}

// Update implements attendance.RecordRepository.
func (a *attendanceRecordRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_in_time = $1,
			clock_out_time = $2,
			clock_in_latitude = $3,
			clock_in_longitude = $4,
			clock_out_latitude = $5,
			clock_out_longitude = $6,
			status = $7,
			minutes_late = $8,
			minutes_early = $9,
			total_minutes = $10,
			justification = $11,
			notes = $12,
			clocked_in_by = $13,
			clocked_out_by = $14,
			justified_by = $15,
			updated_at = NOW()
		WHERE id = $16 AND company_id = $17
	`

	tag, err := q.Exec(ctx, query,
		rec.ClockInTime,
		rec.ClockOutTime,
		rec.ClockInLatitude,
		rec.ClockInLongitude,
		rec.ClockOutLatitude,
		rec.ClockOutLongitude,
		rec.Status,
		rec.MinutesLate,
		rec.MinutesEarly,
		rec.TotalMinutes,
		rec.Justification,
		rec.Notes,
		rec.ClockedInBy,
		rec.ClockedOutBy,
		rec.JustifiedBy,
		rec.ID,
		rec.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// Upsert implements attendance.RecordRepository. Keyed by the unique
// constraint on shift_assignment_id: a second upsert for the same assignment
// overwrites the stored outcome.
func (a *attendanceRecordRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, shift_assignment_id, company_id,
			clock_in_time, clock_out_time,
			clock_in_latitude, clock_in_longitude,
			clock_out_latitude, clock_out_longitude,
			status, minutes_late, minutes_early, total_minutes,
			justification, notes,
			clocked_in_by, clocked_out_by, justified_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		ON CONFLICT (shift_assignment_id) DO UPDATE SET
			clock_in_time = EXCLUDED.clock_in_time,
			clock_out_time = EXCLUDED.clock_out_time,
			clock_in_latitude = EXCLUDED.clock_in_latitude,
			clock_in_longitude = EXCLUDED.clock_in_longitude,
			clock_out_latitude = EXCLUDED.clock_out_latitude,
			clock_out_longitude = EXCLUDED.clock_out_longitude,
			status = EXCLUDED.status,
			minutes_late = EXCLUDED.minutes_late,
			minutes_early = EXCLUDED.minutes_early,
			total_minutes = EXCLUDED.total_minutes,
			justification = EXCLUDED.justification,
			notes = EXCLUDED.notes,
			clocked_in_by = EXCLUDED.clocked_in_by,
			clocked_out_by = EXCLUDED.clocked_out_by,
			justified_by = EXCLUDED.justified_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.ShiftAssignmentID,
		rec.CompanyID,
		rec.ClockInTime,
		rec.ClockOutTime,
		rec.ClockInLatitude,
		rec.ClockInLongitude,
		rec.ClockOutLatitude,
		rec.ClockOutLongitude,
		rec.Status,
		rec.MinutesLate,
		rec.MinutesEarly,
		rec.TotalMinutes,
		rec.Justification,
		rec.Notes,
		rec.ClockedInBy,
		rec.ClockedOutBy,
		rec.JustifiedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return rec, nil
}

// List implements attendance.RecordRepository.
func (a *attendanceRecordRepository) List(ctx context.Context, filter attendance.RecordFilter, companyID string) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	whereClause := "WHERE r.company_id = $1"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.Date != nil && *filter.Date != "" {
		whereClause += fmt.Sprintf(" AND r.clock_in_time::date = $%d", argIndex)
		args = append(args, *filter.Date)
		argIndex++
	}

	if filter.UserID != nil && *filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND sa.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND r.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.ShiftAssignmentID != nil && *filter.ShiftAssignmentID != "" {
		whereClause += fmt.Sprintf(" AND r.shift_assignment_id = $%d", argIndex)
		args = append(args, *filter.ShiftAssignmentID)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance_records r
		JOIN shift_assignments sa ON sa.id = r.shift_assignment_id
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		JOIN shift_assignments sa ON sa.id = r.shift_assignment_id
		%s
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d
	`, recordColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// ListInRange implements attendance.RecordRepository. A record belongs to the
// period when its clock-in, or the scheduled shift start for clock-less
// absences, falls within [start, end].
func (a *attendanceRecordRepository) ListInRange(ctx context.Context, companyID string, start, end time.Time, userID, departmentID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	whereClause := `WHERE r.company_id = $1
		  AND (
			(r.clock_in_time IS NOT NULL AND r.clock_in_time BETWEEN $2 AND $3)
			OR (r.clock_in_time IS NULL AND sa.shift_starts_at BETWEEN $2 AND $3)
		  )`
	args := []interface{}{companyID, start, end}
	argIndex := 4

	if userID != nil && *userID != "" {
		whereClause += fmt.Sprintf(" AND sa.user_id = $%d", argIndex)
		args = append(args, *userID)
		argIndex++
	}

	if departmentID != nil && *departmentID != "" {
		whereClause += fmt.Sprintf(" AND u.department_id = $%d", argIndex)
		args = append(args, *departmentID)
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records r
		JOIN shift_assignments sa ON sa.id = r.shift_assignment_id
		JOIN users u ON u.id = sa.user_id
		%s
		ORDER BY sa.shift_starts_at ASC, r.id ASC
	`, recordColumns, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records in range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepository{db: db}
}
