package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Name:        req.Name,
		Phone:       req.Phone,
		Diagnosis:   req.Diagnosis,
		Reason:      req.Reason,
		ServiceArea: req.ServiceArea,
		Status:      model.PatientStatusPending,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("patient", err)
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Diagnosis != nil {
		patient.Diagnosis = *req.Diagnosis
	}
	if req.Reason != nil {
		patient.Reason = *req.Reason
	}
	if req.ServiceArea != nil {
		patient.ServiceArea = *req.ServiceArea
	}
	if req.ProgramNumber != nil {
		patient.ProgramNumber = *req.ProgramNumber
	}
	if req.Status != nil {
		status := model.PatientStatus(*req.Status)
		switch status {
		case model.PatientStatusActive, model.PatientStatusPending, model.PatientStatusDischarged:
			patient.Status = status
		default:
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", *req.Status), nil)
		}
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.NotFound("patient", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// ListPendingFirstAppointment returns registered patients still waiting for
// their first booking, oldest first.
func (s *Service) ListPendingFirstAppointment(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.ListPendingFirstAppointment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending patients: %w", err)
	}
	return patients, nil
}
