package visit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/agenda-api/internal/model"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

type fakeVisitRepo struct {
	registered []*model.VisitNote
}

func (f *fakeVisitRepo) RegisterSession(_ context.Context, note *model.VisitNote) error {
	note.ID = uuid.New()
	f.registered = append(f.registered, note)
	return nil
}

func (f *fakeVisitRepo) ListForPatient(context.Context, uuid.UUID) ([]*model.VisitNote, error) {
	return f.registered, nil
}

type fakeAppointmentRepo struct {
	appointment *model.Appointment
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }

func (f *fakeAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FetchDayIntervals(context.Context, []uuid.UUID, time.Time) ([]*model.AppointmentInterval, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) BookWithPatient(context.Context, *model.Patient, *model.Appointment) error {
	return nil
}

func (f *fakeAppointmentRepo) ListForReminder(context.Context, time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

type fakeEmitter struct {
	events []string
}

func (f *fakeEmitter) Emit(_ context.Context, eventType string, _ interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

func seededService(status model.AppointmentStatus) (*Service, *fakeVisitRepo, *model.Appointment, *fakeEmitter) {
	appointment := &model.Appointment{
		Base:        model.Base{ID: uuid.New()},
		ClinicianID: uuid.New(),
		PatientID:   uuid.New(),
		Category:    model.CategoryTreatment,
		Status:      status,
	}
	visits := &fakeVisitRepo{}
	emitter := &fakeEmitter{}
	svc := NewService(visits, &fakeAppointmentRepo{appointment: appointment}, emitter)
	return svc, visits, appointment, emitter
}

func TestRegisterSession(t *testing.T) {
	svc, visits, appointment, emitter := seededService(model.AppointmentStatusScheduled)

	note, err := svc.RegisterSession(context.Background(), &model.RegisterSessionRequest{
		AppointmentID: appointment.ID,
		ClinicianID:   appointment.ClinicianID,
		Summary:       "initial progress within expected range",
	})
	require.NoError(t, err)

	assert.Equal(t, appointment.PatientID, note.PatientID)
	assert.Equal(t, appointment.ClinicianID, note.ClinicianID)
	require.Len(t, visits.registered, 1)
	assert.Equal(t, []string{model.EventSessionRegistered}, emitter.events)
}

func TestRegisterSessionRejectsWrongClinician(t *testing.T) {
	svc, _, appointment, _ := seededService(model.AppointmentStatusScheduled)

	_, err := svc.RegisterSession(context.Background(), &model.RegisterSessionRequest{
		AppointmentID: appointment.ID,
		ClinicianID:   uuid.New(),
		Summary:       "note",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestRegisterSessionRejectsDoubleRegistration(t *testing.T) {
	svc, _, appointment, _ := seededService(model.AppointmentStatusAttended)

	_, err := svc.RegisterSession(context.Background(), &model.RegisterSessionRequest{
		AppointmentID: appointment.ID,
		ClinicianID:   appointment.ClinicianID,
		Summary:       "note",
	})
	require.Error(t, err)
}

func TestRegisterSessionRejectsCancelled(t *testing.T) {
	svc, _, appointment, _ := seededService(model.AppointmentStatusCancelled)

	_, err := svc.RegisterSession(context.Background(), &model.RegisterSessionRequest{
		AppointmentID: appointment.ID,
		ClinicianID:   appointment.ClinicianID,
		Summary:       "note",
	})
	require.Error(t, err)
}
