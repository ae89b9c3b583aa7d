package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

// GetByCompany implements settings.SettingsRepository.
func (s *settingsRepository) GetByCompany(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT company_id, require_gps, max_gps_radius_meters,
			   company_latitude, company_longitude,
			   late_tolerance_minutes, early_departure_minutes,
			   allow_manager_clock_in, allow_self_clock_in,
			   notify_on_late, notify_on_absent,
			   created_at, updated_at
		FROM attendance_settings
		WHERE company_id = $1
	`

	var cfg settings.AttendanceSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&cfg.CompanyID, &cfg.RequireGPS, &cfg.MaxGPSRadiusMeters,
		&cfg.CompanyLatitude, &cfg.CompanyLongitude,
		&cfg.LateToleranceMinutes, &cfg.EarlyDepartureMinutes,
		&cfg.AllowManagerClockIn, &cfg.AllowSelfClockIn,
		&cfg.NotifyOnLate, &cfg.NotifyOnAbsent,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	return cfg, nil
}

// Upsert implements settings.SettingsRepository. One row per company.
func (s *settingsRepository) Upsert(ctx context.Context, cfg settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO attendance_settings (
			company_id, require_gps, max_gps_radius_meters,
			company_latitude, company_longitude,
			late_tolerance_minutes, early_departure_minutes,
			allow_manager_clock_in, allow_self_clock_in,
			notify_on_late, notify_on_absent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (company_id) DO UPDATE SET
			require_gps = EXCLUDED.require_gps,
			max_gps_radius_meters = EXCLUDED.max_gps_radius_meters,
			company_latitude = EXCLUDED.company_latitude,
			company_longitude = EXCLUDED.company_longitude,
			late_tolerance_minutes = EXCLUDED.late_tolerance_minutes,
			early_departure_minutes = EXCLUDED.early_departure_minutes,
			allow_manager_clock_in = EXCLUDED.allow_manager_clock_in,
			allow_self_clock_in = EXCLUDED.allow_self_clock_in,
			notify_on_late = EXCLUDED.notify_on_late,
			notify_on_absent = EXCLUDED.notify_on_absent,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.CompanyID,
		cfg.RequireGPS,
		cfg.MaxGPSRadiusMeters,
		cfg.CompanyLatitude,
		cfg.CompanyLongitude,
		cfg.LateToleranceMinutes,
		cfg.EarlyDepartureMinutes,
		cfg.AllowManagerClockIn,
		cfg.AllowSelfClockIn,
		cfg.NotifyOnLate,
		cfg.NotifyOnAbsent,
	).Scan(&cfg.CreatedAt, &cfg.UpdatedAt)

	if err != nil {
		return settings.AttendanceSettings{}, fmt.Errorf("failed to upsert attendance settings: %w", err)
	}

	return cfg, nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
