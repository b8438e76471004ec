package clinician

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
	"github.com/openclinic/agenda-api/pkg/validator"
)

type Service struct {
	repo         repository.ClinicianRepository
	scheduleRepo repository.ScheduleRepository
	validate     validator.Validator
}

func NewService(repo repository.ClinicianRepository, scheduleRepo repository.ScheduleRepository) *Service {
	return &Service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		validate:     validator.New(),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateClinicianRequest) (*model.Clinician, error) {
	clinician := &model.Clinician{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Status:    model.ClinicianStatusActive,
	}

	if err := s.repo.Create(ctx, clinician); err != nil {
		return nil, fmt.Errorf("failed to create clinician: %w", err)
	}
	return clinician, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error) {
	clinician, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("clinician", err)
	}
	return clinician, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateClinicianRequest) (*model.Clinician, error) {
	clinician, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("clinician", err)
	}

	if req.Name != nil {
		clinician.Name = *req.Name
	}
	if req.Email != nil {
		clinician.Email = *req.Email
	}
	if req.Specialty != nil {
		clinician.Specialty = *req.Specialty
	}
	if req.Status != nil {
		status := model.ClinicianStatus(*req.Status)
		switch status {
		case model.ClinicianStatusActive, model.ClinicianStatusInactive:
			clinician.Status = status
		default:
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", *req.Status), nil)
		}
	}

	if err := s.repo.Update(ctx, clinician); err != nil {
		return nil, fmt.Errorf("failed to update clinician: %w", err)
	}
	return clinician, nil
}

func (s *Service) List(ctx context.Context, filters *model.ClinicianFilters) ([]*model.Clinician, error) {
	clinicians, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinicians: %w", err)
	}
	return clinicians, nil
}

// GetSchedule returns the clinician's weekly working windows.
func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID) ([]*model.WorkSchedule, error) {
	schedules, err := s.scheduleRepo.ListForClinician(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedules, nil
}

// SetSchedule replaces the working window for one weekday. The clinic
// operates Monday through Friday only.
func (s *Service) SetSchedule(ctx context.Context, schedule *model.WorkSchedule) error {
	if err := s.validate.Validate(schedule); err != nil {
		return apperrors.BadRequest(err.Error(), err)
	}
	if schedule.WindowEnd <= schedule.WindowStart {
		return apperrors.BadRequest("window_end must be after window_start", nil)
	}

	if err := s.scheduleRepo.Upsert(ctx, schedule); err != nil {
		return fmt.Errorf("failed to set schedule: %w", err)
	}
	return nil
}
