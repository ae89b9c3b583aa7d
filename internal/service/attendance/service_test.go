package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/settings"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
)

// ===== FAKES =====

type fakeRecordRepo struct {
	mu           sync.Mutex
	byAssignment map[string]attendance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{byAssignment: make(map[string]attendance.Record)}
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byAssignment[rec.ShiftAssignmentID]; exists {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.byAssignment[rec.ShiftAssignmentID] = rec
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byAssignment {
		if rec.ID == id && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) GetByAssignment(ctx context.Context, shiftAssignmentID string, companyID string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, exists := f.byAssignment[shiftAssignmentID]
	if !exists || rec.CompanyID != companyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec attendance.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byAssignment[rec.ShiftAssignmentID]; !exists {
		return attendance.ErrRecordNotFound
	}
	rec.UpdatedAt = time.Now()
	f.byAssignment[rec.ShiftAssignmentID] = rec
	return nil
}

func (f *fakeRecordRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, exists := f.byAssignment[rec.ShiftAssignmentID]; exists {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = time.Now()
	}
	rec.UpdatedAt = time.Now()
	f.byAssignment[rec.ShiftAssignmentID] = rec
	return rec, nil
}

func (f *fakeRecordRepo) List(ctx context.Context, filter attendance.RecordFilter, companyID string) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []attendance.Record
	for _, rec := range f.byAssignment {
		if rec.CompanyID == companyID {
			records = append(records, rec)
		}
	}
	return records, int64(len(records)), nil
}

func (f *fakeRecordRepo) ListInRange(ctx context.Context, companyID string, start, end time.Time, userID, departmentID *string) ([]attendance.Record, error) {
	return nil, nil
}

type fakeAssignmentRepo struct {
	byID map[string]schedule.ShiftAssignment
}

func (f *fakeAssignmentRepo) GetByID(ctx context.Context, id string, companyID string) (schedule.ShiftAssignment, error) {
	a, exists := f.byID[id]
	if !exists || a.CompanyID != companyID {
		return schedule.ShiftAssignment{}, schedule.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) ListInRange(ctx context.Context, companyID string, start, end time.Time, filter schedule.AssignmentFilter) ([]schedule.ShiftAssignment, error) {
	return nil, nil
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	f.byID[a.ID] = a
	return a, nil
}

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

type fakeNotifier struct {
	mu          sync.Mutex
	lateCalls   int
	absentCalls int
	lastMinutes int
}

func (f *fakeNotifier) NotifyLate(companyID, userID, shiftAssignmentID string, minutesLate int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lateCalls++
	f.lastMinutes = minutesLate
}

func (f *fakeNotifier) NotifyAbsent(companyID, userID, shiftAssignmentID string, justified bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.absentCalls++
}

// ===== HELPERS =====

const (
	testCompanyID = "company-1"
	testWorkerID  = "worker-1"
	testManagerID = "manager-1"
)

func claimsContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": testCompanyID,
		"role":       string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// nineToFive is a shift scheduled 09:00-17:00 UTC on 2025-03-10.
func nineToFive(id, userID string) schedule.ShiftAssignment {
	return schedule.ShiftAssignment{
		ID:        id,
		UserID:    userID,
		CompanyID: testCompanyID,
		Shift: schedule.Shift{
			Title:    "Morning shift",
			StartsAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC),
		},
	}
}

type testEnv struct {
	svc         *ClockEventServiceImpl
	records     *fakeRecordRepo
	assignments *fakeAssignmentRepo
	settings    *fakeSettingsRepo
	notifier    *fakeNotifier
}

func newTestEnv(assignments ...schedule.ShiftAssignment) *testEnv {
	byID := make(map[string]schedule.ShiftAssignment)
	for _, a := range assignments {
		byID[a.ID] = a
	}

	env := &testEnv{
		records:     newFakeRecordRepo(),
		assignments: &fakeAssignmentRepo{byID: byID},
		settings:    &fakeSettingsRepo{},
		notifier:    &fakeNotifier{},
	}
	env.svc = NewClockEventService(env.records, env.assignments, env.settings, env.notifier).(*ClockEventServiceImpl)
	return env
}

func (e *testEnv) at(instant time.Time) {
	e.svc.now = func() time.Time { return instant }
}

// ===== CLOCK IN =====

func TestSubmit_ClockIn_OnTimeWithinTolerance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.MinutesLate)
	assert.NotNil(t, resp.ClockInTime)
	assert.Nil(t, resp.ClockedInBy)
	assert.Equal(t, 0, env.notifier.lateCalls)
}

func TestSubmit_ClockIn_LateBeyondTolerance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		LateToleranceMinutes: 15,
		NotifyOnLate:         true,
	}
	env.at(time.Date(2025, 3, 10, 9, 25, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 25, resp.MinutesLate)
	assert.Equal(t, 1, env.notifier.lateCalls)
	assert.Equal(t, 25, env.notifier.lastMinutes)
}

func TestSubmit_ClockIn_ExactlyAtToleranceIsPresent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.MinutesLate)
}

func TestSubmit_ClockIn_Twice(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	req := attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	}

	_, err := env.svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestSubmit_ClockIn_ConcurrentOnlyOneWins(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	req := attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	}

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Submit(ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	conflicts := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestSubmit_ClockIn_UnknownAssignment(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "missing",
		Action:            attendance.ActionClockIn,
	})

	assert.ErrorIs(t, err, schedule.ErrAssignmentNotFound)
}

// ===== GEOFENCE =====

func TestSubmit_ClockIn_GPSRequiredWithoutLocation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		RequireGPS:           true,
		MaxGPSRadiusMeters:   100,
		LateToleranceMinutes: 15,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
}

func TestSubmit_ClockIn_OutsideGeofence(t *testing.T) {
	t.Parallel()
	lat, lon := -6.2, 106.8
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		RequireGPS:           true,
		MaxGPSRadiusMeters:   100,
		CompanyLatitude:      &lat,
		CompanyLongitude:     &lon,
		LateToleranceMinutes: 15,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	// Roughly 1.1 km north of the center.
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
		Location:          &attendance.GeoPoint{Latitude: -6.19, Longitude: 106.8},
	})

	var outOfRange *attendance.OutOfRangeError
	require.ErrorAs(t, err, &outOfRange)
	assert.Greater(t, outOfRange.DistanceMeters, 100.0)
	assert.Equal(t, 100, outOfRange.LimitMeters)
}

func TestSubmit_ClockIn_InsideGeofence(t *testing.T) {
	t.Parallel()
	lat, lon := -6.2, 106.8
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		RequireGPS:           true,
		MaxGPSRadiusMeters:   100,
		CompanyLatitude:      &lat,
		CompanyLongitude:     &lon,
		LateToleranceMinutes: 15,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
		Location:          &attendance.GeoPoint{Latitude: -6.2001, Longitude: 106.8001},
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.ClockInLatitude)
	assert.InDelta(t, -6.2001, *resp.ClockInLatitude, 1e-9)
}

func TestSubmit_ClockIn_GPSRequiredNoCenterConfigured(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		RequireGPS:           true,
		MaxGPSRadiusMeters:   100,
		LateToleranceMinutes: 15,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	// Any location passes when no center point exists.
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
		Location:          &attendance.GeoPoint{Latitude: 50.0, Longitude: 3.0},
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

// ===== CLOCK OUT =====

func TestSubmit_ClockOut_WithoutClockIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockOut,
	})

	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestSubmit_ClockOut_EarlyBeyondTolerance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})
	require.NoError(t, err)

	env.at(time.Date(2025, 3, 10, 16, 30, 0, 0, time.UTC))
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockOut,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusEarlyDeparture, resp.Status)
	assert.Equal(t, 30, resp.MinutesEarly)
	require.NotNil(t, resp.TotalMinutes)
	assert.Equal(t, 450, *resp.TotalMinutes)
}

func TestSubmit_ClockOut_LateStatusStaysLate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	env.at(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})
	require.NoError(t, err)

	env.at(time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC))
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockOut,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 60, resp.MinutesEarly)
}

func TestSubmit_ClockOut_Twice(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})
	require.NoError(t, err)

	env.at(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	req := attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockOut,
	}
	_, err = env.svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

// ===== GUARDS =====

func TestSubmit_EmployeeCannotActOnOthers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "other-employee", user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	assert.ErrorIs(t, err, attendance.ErrActionForbidden)
}

func TestSubmit_SelfServiceDisabledBlocksNonClockActions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testManagerID))
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	// Manager acting on their own assignment: clock actions pass, the
	// rest hits the self-service gate.
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})
	require.NoError(t, err)

	justification := "sick"
	_, err = env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionJustifyAbsence,
		Justification:     &justification,
	})
	assert.ErrorIs(t, err, attendance.ErrSelfServiceDisabled)
}

func TestSubmit_ManagerOnlyActionsRejectEmployees(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		LateToleranceMinutes: 15,
		AllowSelfClockIn:     true,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
	})

	assert.ErrorIs(t, err, attendance.ErrManagerOnly)
}

func TestSubmit_ManagerClockInDisabledByPolicy(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		LateToleranceMinutes: 15,
		AllowManagerClockIn:  false,
	}
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	assert.ErrorIs(t, err, attendance.ErrActionForbidden)
}

func TestSubmit_ManagerClockInRecordsActor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.ClockedInBy)
	assert.Equal(t, testManagerID, *resp.ClockedInBy)
}

// ===== ABSENCES =====

func TestSubmit_MarkAbsent_WithAndWithoutJustification(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID), nineToFive("sa-2", testWorkerID))
	env.settings.cfg = &settings.AttendanceSettings{
		CompanyID:            testCompanyID,
		LateToleranceMinutes: 15,
		NotifyOnAbsent:       true,
	}
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsentUnjustified, resp.Status)

	justification := "medical leave"
	resp, err = env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-2",
		Action:            attendance.ActionMarkAbsent,
		Justification:     &justification,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsentJustified, resp.Status)
	require.NotNil(t, resp.Justification)
	assert.Equal(t, "medical leave", *resp.Justification)
	assert.Equal(t, 2, env.notifier.absentCalls)
}

func TestSubmit_MarkAbsent_OverwritesExistingRecord(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
	})
	require.NoError(t, err)

	justification := "approved leave"
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
		Justification:     &justification,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsentJustified, resp.Status)
}

func TestSubmit_ClockIn_AfterMarkAbsentClearsJustification(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	managerCtx := claimsContext(t, testManagerID, user.RoleManager)

	justification := "sick leave"
	_, err := env.svc.Submit(managerCtx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
		Justification:     &justification,
	})
	require.NoError(t, err)

	env.at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Nil(t, resp.Justification)
	assert.Nil(t, resp.JustifiedBy)
}

func TestSubmit_JustifyAbsence_RequiresExistingRecord(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	justification := "doctor visit"
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionJustifyAbsence,
		Justification:     &justification,
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	_, err = env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionMarkAbsent,
	})
	require.NoError(t, err)

	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionJustifyAbsence,
		Justification:     &justification,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsentJustified, resp.Status)
	require.NotNil(t, resp.JustifiedBy)
	assert.Equal(t, testManagerID, *resp.JustifiedBy)
}

// ===== MANUAL ENTRY =====

func TestSubmit_ManualEntry_DerivesStatusAndTotals(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	in := "2025-03-10T09:30:00Z"
	out := "2025-03-10T17:00:00Z"
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionManualEntry,
		ClockInTime:       &in,
		ClockOutTime:      &out,
	})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, 30, resp.MinutesLate)
	require.NotNil(t, resp.TotalMinutes)
	assert.Equal(t, 450, *resp.TotalMinutes)
}

func TestSubmit_ManualEntry_InvalidRange(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testManagerID, user.RoleManager)

	in := "2025-03-10T17:00:00Z"
	out := "2025-03-10T09:00:00Z"
	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionManualEntry,
		ClockInTime:       &in,
		ClockOutTime:      &out,
	})

	assert.ErrorIs(t, err, attendance.ErrInvalidClockRange)
}

// ===== FULL DAY SCENARIO =====

func TestSubmit_FullDayScenario(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	env.at(time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC))
	resp, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockIn,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	// 16:50 is only 10 minutes early, inside the tolerance.
	env.at(time.Date(2025, 3, 10, 16, 50, 0, 0, time.UTC))
	resp, err = env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.ActionClockOut,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, 0, resp.MinutesEarly)
	require.NotNil(t, resp.TotalMinutes)
	assert.Equal(t, 465, *resp.TotalMinutes)
}

// ===== VALIDATION =====

func TestSubmit_InvalidAction(t *testing.T) {
	t.Parallel()
	env := newTestEnv(nineToFive("sa-1", testWorkerID))
	ctx := claimsContext(t, testWorkerID, user.RoleEmployee)

	_, err := env.svc.Submit(ctx, attendance.SubmitActionRequest{
		ShiftAssignmentID: "sa-1",
		Action:            attendance.Action("teleport"),
	})
	assert.Error(t, err)
}
