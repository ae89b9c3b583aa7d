package settings

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
)

type fakeSettingsRepo struct {
	cfg *settings.AttendanceSettings
}

func (f *fakeSettingsRepo) GetByCompany(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	if f.cfg == nil {
		return settings.AttendanceSettings{}, settings.ErrSettingsNotFound
	}
	return *f.cfg, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.AttendanceSettings) (settings.AttendanceSettings, error) {
	f.cfg = &s
	return s, nil
}

func settingsContext(t *testing.T, role user.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "company-1",
		"role":       string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestSettingsService_Get_FallsBackToDefaults(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := settingsContext(t, user.RoleEmployee)

	resp, err := svc.Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, "company-1", resp.CompanyID)
	assert.Equal(t, 100, resp.MaxGPSRadiusMeters)
	assert.Equal(t, 15, resp.LateToleranceMinutes)
	assert.True(t, resp.AllowManagerClockIn)
	assert.False(t, resp.AllowSelfClockIn)
}

func TestSettingsService_Update_AdminOnly(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := settingsContext(t, user.RoleManager)

	requireGPS := true
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{RequireGPS: &requireGPS})

	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestSettingsService_Update_PartialOverDefaults(t *testing.T) {
	t.Parallel()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)
	ctx := settingsContext(t, user.RoleAdmin)

	tolerance := 30
	resp, err := svc.Update(ctx, settings.UpdateSettingsRequest{LateToleranceMinutes: &tolerance})

	require.NoError(t, err)
	assert.Equal(t, 30, resp.LateToleranceMinutes)
	// Untouched fields keep their defaults.
	assert.Equal(t, 15, resp.EarlyDepartureMinutes)
	assert.True(t, resp.AllowManagerClockIn)
	require.NotNil(t, repo.cfg)
	assert.Equal(t, 30, repo.cfg.LateToleranceMinutes)
}

func TestSettingsService_Update_GeofenceCenterPair(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := settingsContext(t, user.RoleAdmin)

	lat := -6.2
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{CompanyLatitude: &lat})
	assert.Error(t, err)

	lon := 106.8
	resp, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		CompanyLatitude:  &lat,
		CompanyLongitude: &lon,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.CompanyLatitude)
	assert.InDelta(t, -6.2, *resp.CompanyLatitude, 1e-9)
}
