package visit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
	"github.com/openclinic/agenda-api/internal/service/event"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

type Service struct {
	repo            repository.VisitRepository
	appointmentRepo repository.AppointmentRepository
	emitter         event.Emitter
}

func NewService(repo repository.VisitRepository, appointmentRepo repository.AppointmentRepository, emitter event.Emitter) *Service {
	return &Service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		emitter:         emitter,
	}
}

// RegisterSession writes the clinical note for a held session and marks the
// appointment attended, atomically. The note's patient is taken from the
// appointment, and the registering clinician must own it.
func (s *Service) RegisterSession(ctx context.Context, req *model.RegisterSessionRequest) (*model.VisitNote, error) {
	appointment, err := s.appointmentRepo.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if appointment.ClinicianID != req.ClinicianID {
		return nil, apperrors.Conflict("appointment belongs to another clinician", nil)
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.Conflict("appointment is cancelled", nil)
	}
	if appointment.Status == model.AppointmentStatusAttended {
		return nil, apperrors.Conflict("session already registered", nil)
	}

	note := &model.VisitNote{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		ClinicianID:   appointment.ClinicianID,
		Summary:       req.Summary,
		Treatment:     req.Treatment,
		NextSteps:     req.NextSteps,
	}

	if err := s.repo.RegisterSession(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	if err := s.emitter.Emit(ctx, model.EventSessionRegistered, note); err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to emit event")
	}

	return note, nil
}

// History returns a patient's visit notes, newest first.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) ([]*model.VisitNote, error) {
	notes, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit notes: %w", err)
	}
	return notes, nil
}
