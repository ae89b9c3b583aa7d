package settings

import "context"

// SettingsRepository persists the per-company attendance policy.
type SettingsRepository interface {
	// GetByCompany retrieves the settings row; returns ErrSettingsNotFound
	// when the company never saved one. Callers fall back to Defaults().
	GetByCompany(ctx context.Context, companyID string) (AttendanceSettings, error)

	// Upsert creates or replaces the settings row for a company
	Upsert(ctx context.Context, s AttendanceSettings) (AttendanceSettings, error)
}

// SettingsService defines policy read/update for the configuration flow.
// The attendance engine itself only ever reads.
type SettingsService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
