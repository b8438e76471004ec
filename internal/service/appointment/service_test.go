package appointment

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

type fakeRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	booked       []*model.Appointment
	updated      []*model.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, a *model.Appointment) error {
	f.appointments[a.ID] = a
	f.updated = append(f.updated, a)
	return nil
}

func (f *fakeRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) FetchDayIntervals(context.Context, []uuid.UUID, time.Time) ([]*model.AppointmentInterval, error) {
	return nil, nil
}

func (f *fakeRepo) BookWithPatient(_ context.Context, patient *model.Patient, a *model.Appointment) error {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	a.ID = uuid.New()
	a.PatientID = patient.ID
	f.appointments[a.ID] = a
	f.booked = append(f.booked, a)
	return nil
}

func (f *fakeRepo) ListForReminder(context.Context, time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

type fakeEmitter struct {
	events []string
}

func (f *fakeEmitter) Emit(_ context.Context, eventType string, _ interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

func tod(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func validBooking(t *testing.T) *model.CreateAppointmentRequest {
	t.Helper()
	return &model.CreateAppointmentRequest{
		Patient:     model.BookingPatient{Name: "Luis Hernández", Phone: "555-0101"},
		ClinicianID: uuid.New(),
		Date:        "2026-08-31",
		StartTime:   tod(t, "09:00"),
		EndTime:     tod(t, "09:30"),
		Category:    model.CategoryFirstVisit,
	}
}

func TestBookCreatesPatientAndAppointment(t *testing.T) {
	repo := newFakeRepo()
	emitter := &fakeEmitter{}
	svc := NewService(repo, emitter)

	booked, err := svc.Book(context.Background(), validBooking(t))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, booked.ID)
	assert.NotEqual(t, uuid.Nil, booked.PatientID)
	assert.Equal(t, model.AppointmentStatusScheduled, booked.Status)
	require.Len(t, repo.booked, 1)
	assert.Equal(t, []string{model.EventAppointmentCreated}, emitter.events)
}

func TestBookLinkedFirstVisitStartsLinked(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeEmitter{})

	req := validBooking(t)
	req.Category = model.CategoryLinkedFirstVisit

	booked, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusLinked, booked.Status)
}

func TestBookRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeEmitter{})

	req := validBooking(t)
	req.Date = "31/08/2026"
	_, err := svc.Book(context.Background(), req)
	require.Error(t, err)

	req = validBooking(t)
	req.EndTime = req.StartTime
	_, err = svc.Book(context.Background(), req)
	require.Error(t, err)

	req = validBooking(t)
	req.SessionTotal = 10
	req.SessionIndex = 11
	_, err = svc.Book(context.Background(), req)
	require.Error(t, err)
}

func seedAppointment(repo *fakeRepo, category model.AppointmentCategory, status model.AppointmentStatus) uuid.UUID {
	id := uuid.New()
	repo.appointments[id] = &model.Appointment{
		Base:        model.Base{ID: id},
		ClinicianID: uuid.New(),
		PatientID:   uuid.New(),
		Category:    category,
		Status:      status,
	}
	return id
}

func TestUpdateAttendanceMarksAttended(t *testing.T) {
	repo := newFakeRepo()
	emitter := &fakeEmitter{}
	svc := NewService(repo, emitter)
	id := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusScheduled)

	updated, err := svc.UpdateAttendance(context.Background(), id, &model.UpdateAttendanceRequest{Attended: true})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusAttended, updated.Status)
	assert.Equal(t, []string{model.EventAppointmentAttended}, emitter.events)

	// A later attended=false replay must not demote the record.
	updated, err = svc.UpdateAttendance(context.Background(), id, &model.UpdateAttendanceRequest{Attended: false})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusAttended, updated.Status)
}

func TestUpdateAttendanceMarksMissed(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmitter{})
	id := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusScheduled)

	updated, err := svc.UpdateAttendance(context.Background(), id, &model.UpdateAttendanceRequest{Attended: false})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusMissed, updated.Status)
}

func TestUpdateAttendanceRejectsCancelled(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmitter{})
	id := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusCancelled)

	_, err := svc.UpdateAttendance(context.Background(), id, &model.UpdateAttendanceRequest{Attended: true})
	require.Error(t, err)
}

func TestHandoffToReception(t *testing.T) {
	repo := newFakeRepo()
	emitter := &fakeEmitter{}
	svc := NewService(repo, emitter)
	id := seedAppointment(repo, model.CategoryFirstVisit, model.AppointmentStatusScheduled)

	updated, err := svc.HandoffToReception(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLinkedFirstVisit, updated.Category)
	assert.Equal(t, model.AppointmentStatusLinked, updated.Status)
	assert.Equal(t, []string{model.EventReceptionHandoff}, emitter.events)
}

func TestHandoffRejectsTreatmentSessions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmitter{})
	id := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusScheduled)

	_, err := svc.HandoffToReception(context.Background(), id)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCancelTransitions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmitter{})

	id := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusScheduled)
	require.NoError(t, svc.Cancel(context.Background(), id))
	assert.Equal(t, model.AppointmentStatusCancelled, repo.appointments[id].Status)

	// Cancelling twice conflicts.
	require.Error(t, svc.Cancel(context.Background(), id))

	attended := seedAppointment(repo, model.CategoryTreatment, model.AppointmentStatusAttended)
	require.Error(t, svc.Cancel(context.Background(), attended))
}
