package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(repo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{SettingsRepository: repo}
}

func claimsFromContext(ctx context.Context) (companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return companyID, user.Role(roleStr), nil
}

// Get implements settings.SettingsService. Companies that never saved settings
// see the defaults.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	cfg, err := s.SettingsRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			cfg = settings.Defaults(companyID)
		} else {
			return settings.SettingsResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
		}
	}

	return mapSettingsToResponse(cfg), nil
}

// Update implements settings.SettingsService. Partial update over the current
// (or default) policy; admin only.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	companyID, role, err := claimsFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	if role != user.RoleAdmin {
		return settings.SettingsResponse{}, user.ErrAdminAccessRequired
	}

	cfg, err := s.SettingsRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			cfg = settings.Defaults(companyID)
		} else {
			return settings.SettingsResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
		}
	}

	applyUpdate(&cfg, req)

	cfg, err = s.SettingsRepository.Upsert(ctx, cfg)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to upsert attendance settings: %w", err)
	}

	return mapSettingsToResponse(cfg), nil
}

func applyUpdate(cfg *settings.AttendanceSettings, req settings.UpdateSettingsRequest) {
	if req.RequireGPS != nil {
		cfg.RequireGPS = *req.RequireGPS
	}
	if req.MaxGPSRadiusMeters != nil {
		cfg.MaxGPSRadiusMeters = *req.MaxGPSRadiusMeters
	}
	if req.CompanyLatitude != nil && req.CompanyLongitude != nil {
		cfg.CompanyLatitude = req.CompanyLatitude
		cfg.CompanyLongitude = req.CompanyLongitude
	}
	if req.LateToleranceMinutes != nil {
		cfg.LateToleranceMinutes = *req.LateToleranceMinutes
	}
	if req.EarlyDepartureMinutes != nil {
		cfg.EarlyDepartureMinutes = *req.EarlyDepartureMinutes
	}
	if req.AllowManagerClockIn != nil {
		cfg.AllowManagerClockIn = *req.AllowManagerClockIn
	}
	if req.AllowSelfClockIn != nil {
		cfg.AllowSelfClockIn = *req.AllowSelfClockIn
	}
	if req.NotifyOnLate != nil {
		cfg.NotifyOnLate = *req.NotifyOnLate
	}
	if req.NotifyOnAbsent != nil {
		cfg.NotifyOnAbsent = *req.NotifyOnAbsent
	}
}

func mapSettingsToResponse(cfg settings.AttendanceSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		CompanyID:             cfg.CompanyID,
		RequireGPS:            cfg.RequireGPS,
		MaxGPSRadiusMeters:    cfg.MaxGPSRadiusMeters,
		CompanyLatitude:       cfg.CompanyLatitude,
		CompanyLongitude:      cfg.CompanyLongitude,
		LateToleranceMinutes:  cfg.LateToleranceMinutes,
		EarlyDepartureMinutes: cfg.EarlyDepartureMinutes,
		AllowManagerClockIn:   cfg.AllowManagerClockIn,
		AllowSelfClockIn:      cfg.AllowSelfClockIn,
		NotifyOnLate:          cfg.NotifyOnLate,
		NotifyOnAbsent:        cfg.NotifyOnAbsent,
	}
}
