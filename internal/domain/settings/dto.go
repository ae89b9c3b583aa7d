package settings

import (
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	RequireGPS            *bool    `json:"require_gps,omitempty"`
	MaxGPSRadiusMeters    *int     `json:"max_gps_radius_meters,omitempty"`
	CompanyLatitude       *float64 `json:"company_latitude,omitempty"`
	CompanyLongitude      *float64 `json:"company_longitude,omitempty"`
	LateToleranceMinutes  *int     `json:"late_tolerance_minutes,omitempty"`
	EarlyDepartureMinutes *int     `json:"early_departure_minutes,omitempty"`
	AllowManagerClockIn   *bool    `json:"allow_manager_clock_in,omitempty"`
	AllowSelfClockIn      *bool    `json:"allow_self_clock_in,omitempty"`
	NotifyOnLate          *bool    `json:"notify_on_late,omitempty"`
	NotifyOnAbsent        *bool    `json:"notify_on_absent,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MaxGPSRadiusMeters != nil && *r.MaxGPSRadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_gps_radius_meters",
			Message: "max_gps_radius_meters must be a positive number",
		})
	}

	if r.LateToleranceMinutes != nil && *r.LateToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_tolerance_minutes",
			Message: "late_tolerance_minutes must not be negative",
		})
	}

	if r.EarlyDepartureMinutes != nil && *r.EarlyDepartureMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_departure_minutes",
			Message: "early_departure_minutes must not be negative",
		})
	}

	if r.CompanyLatitude != nil && !validator.IsValidLatitude(*r.CompanyLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_latitude",
			Message: "company_latitude must be between -90 and 90",
		})
	}

	if r.CompanyLongitude != nil && !validator.IsValidLongitude(*r.CompanyLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_longitude",
			Message: "company_longitude must be between -180 and 180",
		})
	}

	// A center is set or cleared as a pair.
	if (r.CompanyLatitude == nil) != (r.CompanyLongitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_longitude",
			Message: "company_latitude and company_longitude must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	CompanyID             string   `json:"company_id"`
	RequireGPS            bool     `json:"require_gps"`
	MaxGPSRadiusMeters    int      `json:"max_gps_radius_meters"`
	CompanyLatitude       *float64 `json:"company_latitude,omitempty"`
	CompanyLongitude      *float64 `json:"company_longitude,omitempty"`
	LateToleranceMinutes  int      `json:"late_tolerance_minutes"`
	EarlyDepartureMinutes int      `json:"early_departure_minutes"`
	AllowManagerClockIn   bool     `json:"allow_manager_clock_in"`
	AllowSelfClockIn      bool     `json:"allow_self_clock_in"`
	NotifyOnLate          bool     `json:"notify_on_late"`
	NotifyOnAbsent        bool     `json:"notify_on_absent"`
}
