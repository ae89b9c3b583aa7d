package settings

import "time"

// AttendanceSettings holds the per-company attendance policy. Exactly one row
// per company; the engine falls back to Defaults() when no row exists.
type AttendanceSettings struct {
	CompanyID             string
	RequireGPS            bool
	MaxGPSRadiusMeters    int
	CompanyLatitude       *float64
	CompanyLongitude      *float64
	LateToleranceMinutes  int
	EarlyDepartureMinutes int
	AllowManagerClockIn   bool
	AllowSelfClockIn      bool
	NotifyOnLate          bool
	NotifyOnAbsent        bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Defaults is the policy applied to companies that never saved settings.
// Constructed once per call site instead of inlining the numbers everywhere.
func Defaults(companyID string) AttendanceSettings {
	return AttendanceSettings{
		CompanyID:             companyID,
		RequireGPS:            false,
		MaxGPSRadiusMeters:    100,
		LateToleranceMinutes:  15,
		EarlyDepartureMinutes: 15,
		AllowManagerClockIn:   true,
		AllowSelfClockIn:      false,
		NotifyOnLate:          false,
		NotifyOnAbsent:        false,
	}
}

// HasGeofenceCenter reports whether a company center point is configured.
// GPS capture may be required without a center; the radius check only runs
// when a center exists.
func (s AttendanceSettings) HasGeofenceCenter() bool {
	return s.CompanyLatitude != nil && s.CompanyLongitude != nil
}
