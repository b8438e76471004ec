package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
	"github.com/openclinic/agenda-api/internal/service/event"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

type Service struct {
	repo    repository.AppointmentRepository
	emitter event.Emitter
}

func NewService(repo repository.AppointmentRepository, emitter event.Emitter) *Service {
	return &Service{
		repo:    repo,
		emitter: emitter,
	}
}

// Book creates the appointment together with its patient record: a new
// patient is inserted, a known one (request carries the ID) is updated in
// place. Both writes commit in one transaction, so reception never sees a
// visit without its patient.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}

	if req.EndTime <= req.StartTime {
		return nil, apperrors.BadRequest("end_time must be after start_time", nil)
	}

	if req.SessionTotal > 0 && (req.SessionIndex < 1 || req.SessionIndex > req.SessionTotal) {
		return nil, apperrors.BadRequest("session_index must fall within session_total", nil)
	}

	patient := &model.Patient{
		Name:          req.Patient.Name,
		Phone:         req.Patient.Phone,
		Diagnosis:     req.Patient.Diagnosis,
		Reason:        req.Patient.Reason,
		ServiceArea:   req.ServiceArea,
		ProgramNumber: req.ProgramNumber,
	}
	if req.Patient.ID != nil {
		patient.ID = *req.Patient.ID
	}

	status := model.AppointmentStatusScheduled
	if req.Category == model.CategoryLinkedFirstVisit {
		status = model.AppointmentStatusLinked
	}

	appointment := &model.Appointment{
		ClinicianID:   req.ClinicianID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Category:      req.Category,
		Status:        status,
		ServiceArea:   req.ServiceArea,
		ProgramNumber: req.ProgramNumber,
		SessionIndex:  req.SessionIndex,
		SessionTotal:  req.SessionTotal,
		Notes:         req.Notes,
	}

	if err := s.repo.BookWithPatient(ctx, patient, appointment); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	if err := s.emitter.Emit(ctx, model.EventAppointmentCreated, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to emit event")
	}

	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// DayAgenda lists a clinician's appointments for one calendar day, ordered
// by start time.
func (s *Service) DayAgenda(ctx context.Context, clinicianID uuid.UUID, dateStr string) ([]*model.Appointment, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}

	return s.List(ctx, &model.AppointmentFilters{
		ClinicianID: clinicianID,
		Date:        date,
	})
}

// FirstVisitsForDay lists the day's intake evaluations across all
// clinicians, for the reception desk.
func (s *Service) FirstVisitsForDay(ctx context.Context, dateStr string) ([]*model.Appointment, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}

	return s.List(ctx, &model.AppointmentFilters{
		Category: model.CategoryFirstVisit,
		Date:     date,
	})
}

// UpdateAttendance records whether the visit was held. Attended visits stay
// attended even if the request is replayed with attended=false afterwards;
// the status only moves forward from scheduled.
func (s *Service) UpdateAttendance(ctx context.Context, id uuid.UUID, req *model.UpdateAttendanceRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.Conflict("appointment is cancelled", nil)
	}

	if req.Attended {
		appointment.Status = model.AppointmentStatusAttended
	} else if appointment.Status != model.AppointmentStatusAttended {
		appointment.Status = model.AppointmentStatusMissed
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	eventType := model.EventAppointmentUpdated
	if appointment.Status == model.AppointmentStatusAttended {
		eventType = model.EventAppointmentAttended
	}
	if err := s.emitter.Emit(ctx, eventType, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("failed to emit event")
	}

	return appointment, nil
}

// HandoffToReception re-routes a first visit to the reception desk for
// same-day intake. Only intake evaluations can be handed off.
func (s *Service) HandoffToReception(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if !appointment.Category.IsFirstVisitClass() {
		return nil, apperrors.Conflict("only first visits can be handed off to reception", nil)
	}
	if appointment.Status != model.AppointmentStatusScheduled {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot hand off an appointment in status %s", appointment.Status), nil)
	}

	appointment.Category = model.CategoryLinkedFirstVisit
	appointment.Status = model.AppointmentStatusLinked

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to hand off appointment: %w", err)
	}

	if err := s.emitter.Emit(ctx, model.EventReceptionHandoff, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("failed to emit event")
	}

	return appointment, nil
}

// Cancel frees the slot. Cancelled visits no longer count against
// availability.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("appointment", err)
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return apperrors.Conflict("appointment is already cancelled", nil)
	}
	if appointment.Status == model.AppointmentStatusAttended {
		return apperrors.Conflict("cannot cancel an attended appointment", nil)
	}

	appointment.Status = model.AppointmentStatusCancelled

	if err := s.repo.Update(ctx, appointment); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if err := s.emitter.Emit(ctx, model.EventAppointmentUpdated, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("failed to emit event")
	}

	return nil
}
