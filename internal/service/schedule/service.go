package schedule

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/user"
)

type ScheduleServiceImpl struct {
	schedule.ShiftAssignmentRepository
	userRepo user.UserRepository
}

func NewScheduleService(assignmentRepo schedule.ShiftAssignmentRepository, userRepo user.UserRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ShiftAssignmentRepository: assignmentRepo,
		userRepo:                  userRepo,
	}
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// Create implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateAssignmentRequest) (schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	// The subject must belong to the same company.
	if _, err := s.userRepo.GetByID(ctx, req.UserID, companyID); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	startsAt, endsAt := req.Window()
	assignment := schedule.ShiftAssignment{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		CompanyID: companyID,
		Shift: schedule.Shift{
			Title:    req.ShiftTitle,
			StartsAt: startsAt,
			EndsAt:   endsAt,
		},
	}

	assignment, err = s.ShiftAssignmentRepository.Create(ctx, assignment)
	if err != nil {
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return mapAssignmentToResponse(assignment), nil
}

// Get implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Get(ctx context.Context, id string) (schedule.AssignmentResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	assignment, err := s.ShiftAssignmentRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(assignment), nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, req schedule.ListAssignmentsRequest) ([]schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start, end := req.Range()
	assignments, err := s.ShiftAssignmentRepository.ListInRange(ctx, companyID, start, end, schedule.AssignmentFilter{
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	responses := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, mapAssignmentToResponse(a))
	}
	return responses, nil
}

func mapAssignmentToResponse(a schedule.ShiftAssignment) schedule.AssignmentResponse {
	return schedule.AssignmentResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		DepartmentID: a.DepartmentID,
		ShiftTitle:   a.Shift.Title,
		StartsAt:     a.Shift.StartsAt.Format("2006-01-02 15:04:05"),
		EndsAt:       a.Shift.EndsAt.Format("2006-01-02 15:04:05"),
		CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
