package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/geo"
)

type ClockEventServiceImpl struct {
	attendance.RecordRepository
	schedule.ShiftAssignmentRepository
	settings.SettingsRepository
	notifier notification.Notifier

	// now is injected so timing computations are deterministic in tests.
	now func() time.Time
}

func NewClockEventService(
	recordRepo attendance.RecordRepository,
	assignmentRepo schedule.ShiftAssignmentRepository,
	settingsRepo settings.SettingsRepository,
	notifier notification.Notifier,
) attendance.ClockEventService {
	return &ClockEventServiceImpl{
		RecordRepository:          recordRepo,
		ShiftAssignmentRepository: assignmentRepo,
		SettingsRepository:        settingsRepo,
		notifier:                  notifier,
		now:                       time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// actorFromContext extracts the acting user from JWT claims.
func actorFromContext(ctx context.Context) (actorID, companyID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	actorID, ok = claims["user_id"].(string)
	if !ok || actorID == "" {
		return "", "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", "", fmt.Errorf("role claim is missing or invalid")
	}

	return actorID, companyID, user.Role(roleStr), nil
}

// Submit implements attendance.ClockEventService.
func (s *ClockEventServiceImpl) Submit(ctx context.Context, req attendance.SubmitActionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	actorID, companyID, role, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	assignment, err := s.ShiftAssignmentRepository.GetByID(ctx, req.ShiftAssignmentID, companyID)
	if err != nil {
		if errors.Is(err, schedule.ErrAssignmentNotFound) {
			return attendance.RecordResponse{}, schedule.ErrAssignmentNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}

	cfg, err := s.loadSettings(ctx, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if err := checkGuards(req.Action, actorID, role, assignment, cfg); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().UTC()

	var rec attendance.Record
	switch req.Action {
	case attendance.ActionClockIn:
		rec, err = s.clockIn(ctx, assignment, cfg, req, actorID, now)
	case attendance.ActionClockOut:
		rec, err = s.clockOut(ctx, assignment, cfg, req, actorID, now)
	case attendance.ActionMarkAbsent:
		rec, err = s.markAbsent(ctx, assignment, cfg, req, actorID)
	case attendance.ActionJustifyAbsence:
		rec, err = s.justifyAbsence(ctx, assignment, req, actorID)
	case attendance.ActionManualEntry:
		rec, err = s.manualEntry(ctx, assignment, cfg, req, actorID)
	default:
		err = fmt.Errorf("unhandled action %q", req.Action)
	}
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(rec), nil
}

// checkGuards applies the permission and self-service guards shared by every
// action, then the per-action manager requirements.
func checkGuards(action attendance.Action, actorID string, role user.Role, assignment schedule.ShiftAssignment, cfg settings.AttendanceSettings) error {
	isSubject := actorID == assignment.UserID

	if !role.IsManagerTier() && !isSubject {
		return attendance.ErrActionForbidden
	}

	// Self-service guard. clock_in/clock_out are deliberately exempt: the
	// subject can always clock themself in and out.
	if isSubject && action != attendance.ActionClockIn && action != attendance.ActionClockOut {
		if !cfg.AllowSelfClockIn {
			return attendance.ErrSelfServiceDisabled
		}
	}

	switch action {
	case attendance.ActionMarkAbsent, attendance.ActionJustifyAbsence, attendance.ActionManualEntry:
		if !role.IsManagerTier() {
			return attendance.ErrManagerOnly
		}
	case attendance.ActionClockIn, attendance.ActionClockOut:
		if !isSubject && !cfg.AllowManagerClockIn {
			return attendance.ErrActionForbidden
		}
	}

	return nil
}

// checkGeofence validates the caller location against company policy. The
// radius check only runs when a center point is configured; GPS capture can be
// required without one.
func checkGeofence(cfg settings.AttendanceSettings, loc *attendance.GeoPoint) error {
	if !cfg.RequireGPS {
		return nil
	}
	if loc == nil {
		return attendance.ErrLocationRequired
	}
	if !cfg.HasGeofenceCenter() {
		return nil
	}

	distance := geo.DistanceMeters(
		geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude},
		geo.Point{Latitude: *cfg.CompanyLatitude, Longitude: *cfg.CompanyLongitude},
	)
	if distance > float64(cfg.MaxGPSRadiusMeters) {
		return &attendance.OutOfRangeError{
			DistanceMeters: distance,
			LimitMeters:    cfg.MaxGPSRadiusMeters,
		}
	}

	return nil
}

// minutesBetween returns the whole minutes from `from` to `to`, clamped at
// zero.
func minutesBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// actorRef returns nil when the actor is the subject, else the actor id.
func actorRef(actorID, subjectID string) *string {
	if actorID == subjectID {
		return nil
	}
	return &actorID
}

func (s *ClockEventServiceImpl) loadSettings(ctx context.Context, companyID string) (settings.AttendanceSettings, error) {
	cfg, err := s.SettingsRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Defaults(companyID), nil
		}
		return settings.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}
	return cfg, nil
}

func (s *ClockEventServiceImpl) clockIn(ctx context.Context, assignment schedule.ShiftAssignment, cfg settings.AttendanceSettings, req attendance.SubmitActionRequest, actorID string, now time.Time) (attendance.Record, error) {
	existing, err := s.RecordRepository.GetByAssignment(ctx, assignment.ID, assignment.CompanyID)
	haveExisting := err == nil
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if haveExisting && existing.ClockInTime != nil {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}

	if err := checkGeofence(cfg, req.Location); err != nil {
		return attendance.Record{}, err
	}

	minutesLate := minutesBetween(assignment.Shift.StartsAt, now)
	status := attendance.StatusPresent
	if minutesLate > cfg.LateToleranceMinutes {
		status = attendance.StatusLate
	} else {
		// Within tolerance counts as on time.
		minutesLate = 0
	}

	rec := existing
	if !haveExisting {
		rec = attendance.Record{
			ID:                uuid.New().String(),
			ShiftAssignmentID: assignment.ID,
			CompanyID:         assignment.CompanyID,
		}
	}
	rec.ClockInTime = &now
	rec.Status = status
	rec.MinutesLate = minutesLate
	rec.ClockedInBy = actorRef(actorID, assignment.UserID)
	rec.Notes = req.Notes
	// A record seeded by mark_absent carries a justification; the
	// clock-in supersedes the absence.
	rec.Justification = nil
	rec.JustifiedBy = nil
	if req.Location != nil {
		rec.ClockInLatitude = &req.Location.Latitude
		rec.ClockInLongitude = &req.Location.Longitude
	}

	if haveExisting {
		if err := s.RecordRepository.Update(ctx, rec); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	} else {
		rec, err = s.RecordRepository.Create(ctx, rec)
		if err != nil {
			// The unique constraint on shift_assignment_id arbitrates
			// concurrent clock-ins; the loser gets the conflict.
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				return attendance.Record{}, attendance.ErrAlreadyClockedIn
			}
			return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
	}

	if status == attendance.StatusLate && cfg.NotifyOnLate && s.notifier != nil {
		s.notifier.NotifyLate(assignment.CompanyID, assignment.UserID, assignment.ID, rec.MinutesLate)
	}

	return rec, nil
}

func (s *ClockEventServiceImpl) clockOut(ctx context.Context, assignment schedule.ShiftAssignment, cfg settings.AttendanceSettings, req attendance.SubmitActionRequest, actorID string, now time.Time) (attendance.Record, error) {
	rec, err := s.RecordRepository.GetByAssignment(ctx, assignment.ID, assignment.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec.ClockInTime == nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}
	if rec.ClockOutTime != nil {
		return attendance.Record{}, attendance.ErrAlreadyClockedOut
	}
	if !now.After(*rec.ClockInTime) {
		return attendance.Record{}, attendance.ErrInvalidClockRange
	}

	if err := checkGeofence(cfg, req.Location); err != nil {
		return attendance.Record{}, err
	}

	minutesEarly := minutesBetween(now, assignment.Shift.EndsAt)
	if minutesEarly > cfg.EarlyDepartureMinutes {
		// A LATE status is never downgraded by an early departure.
		if rec.Status == attendance.StatusPresent {
			rec.Status = attendance.StatusEarlyDeparture
		}
	} else {
		minutesEarly = 0
	}

	total := minutesBetween(*rec.ClockInTime, now)
	rec.ClockOutTime = &now
	rec.MinutesEarly = minutesEarly
	rec.TotalMinutes = &total
	rec.ClockedOutBy = actorRef(actorID, assignment.UserID)
	if req.Notes != nil {
		rec.Notes = req.Notes
	}
	if req.Location != nil {
		rec.ClockOutLatitude = &req.Location.Latitude
		rec.ClockOutLongitude = &req.Location.Longitude
	}

	if err := s.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec, nil
}

func (s *ClockEventServiceImpl) markAbsent(ctx context.Context, assignment schedule.ShiftAssignment, cfg settings.AttendanceSettings, req attendance.SubmitActionRequest, actorID string) (attendance.Record, error) {
	justified := req.Justification != nil && *req.Justification != ""
	status := attendance.StatusAbsentUnjustified
	if justified {
		status = attendance.StatusAbsentJustified
	}

	rec := attendance.Record{
		ID:                uuid.New().String(),
		ShiftAssignmentID: assignment.ID,
		CompanyID:         assignment.CompanyID,
		Status:            status,
		Justification:     req.Justification,
		Notes:             req.Notes,
		JustifiedBy:       actorRef(actorID, assignment.UserID),
	}

	rec, err := s.RecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	if cfg.NotifyOnAbsent && s.notifier != nil {
		s.notifier.NotifyAbsent(assignment.CompanyID, assignment.UserID, assignment.ID, justified)
	}

	return rec, nil
}

func (s *ClockEventServiceImpl) justifyAbsence(ctx context.Context, assignment schedule.ShiftAssignment, req attendance.SubmitActionRequest, actorID string) (attendance.Record, error) {
	rec, err := s.RecordRepository.GetByAssignment(ctx, assignment.ID, assignment.CompanyID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	rec.Status = attendance.StatusAbsentJustified
	rec.Justification = req.Justification
	rec.JustifiedBy = actorRef(actorID, assignment.UserID)
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.RecordRepository.Update(ctx, rec); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return rec, nil
}

func (s *ClockEventServiceImpl) manualEntry(ctx context.Context, assignment schedule.ShiftAssignment, cfg settings.AttendanceSettings, req attendance.SubmitActionRequest, actorID string) (attendance.Record, error) {
	clockIn, clockOut := req.ManualRange()
	if !clockOut.After(clockIn) {
		return attendance.Record{}, attendance.ErrInvalidClockRange
	}

	minutesLate := minutesBetween(assignment.Shift.StartsAt, clockIn)
	minutesEarly := minutesBetween(clockOut, assignment.Shift.EndsAt)

	// Late beyond tolerance takes precedence over early departure.
	status := attendance.StatusPresent
	switch {
	case minutesLate > cfg.LateToleranceMinutes:
		status = attendance.StatusLate
	case minutesEarly > cfg.EarlyDepartureMinutes:
		status = attendance.StatusEarlyDeparture
	}
	if minutesLate <= cfg.LateToleranceMinutes {
		minutesLate = 0
	}
	if minutesEarly <= cfg.EarlyDepartureMinutes {
		minutesEarly = 0
	}

	total := minutesBetween(clockIn, clockOut)
	rec := attendance.Record{
		ID:                uuid.New().String(),
		ShiftAssignmentID: assignment.ID,
		CompanyID:         assignment.CompanyID,
		ClockInTime:       &clockIn,
		ClockOutTime:      &clockOut,
		Status:            status,
		MinutesLate:       minutesLate,
		MinutesEarly:      minutesEarly,
		TotalMinutes:      &total,
		Notes:             req.Notes,
		ClockedInBy:       actorRef(actorID, assignment.UserID),
		ClockedOutBy:      actorRef(actorID, assignment.UserID),
	}

	rec, err := s.RecordRepository.Upsert(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	if status == attendance.StatusLate && cfg.NotifyOnLate && s.notifier != nil {
		s.notifier.NotifyLate(assignment.CompanyID, assignment.UserID, assignment.ID, rec.MinutesLate)
	}

	return rec, nil
}

// Get implements attendance.ClockEventService.
func (s *ClockEventServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	_, companyID, _, err := actorFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.RecordRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// List implements attendance.ClockEventService.
func (s *ClockEventServiceImpl) List(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	_, companyID, _, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.RecordRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

// mapRecordToResponse converts a Record entity to RecordResponse
func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:                rec.ID,
		ShiftAssignmentID: rec.ShiftAssignmentID,
		UserID:            rec.UserID,
		ShiftTitle:        rec.ShiftTitle,
		ClockInTime:       timePtrToString(rec.ClockInTime),
		ClockOutTime:      timePtrToString(rec.ClockOutTime),
		ClockInLatitude:   rec.ClockInLatitude,
		ClockInLongitude:  rec.ClockInLongitude,
		ClockOutLatitude:  rec.ClockOutLatitude,
		ClockOutLongitude: rec.ClockOutLongitude,
		Status:            rec.Status,
		MinutesLate:       rec.MinutesLate,
		MinutesEarly:      rec.MinutesEarly,
		TotalMinutes:      rec.TotalMinutes,
		Justification:     rec.Justification,
		Notes:             rec.Notes,
		ClockedInBy:       rec.ClockedInBy,
		ClockedOutBy:      rec.ClockedOutBy,
		JustifiedBy:       rec.JustifiedBy,
		CreatedAt:         rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
