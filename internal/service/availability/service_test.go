package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/agenda-api/internal/config"
	"github.com/openclinic/agenda-api/internal/model"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

type fakeScheduleRepo struct {
	workdays     []*model.ClinicianWorkday
	resolveCalls int
	lastWeekday  int
	lastSelector model.ClinicianSelector
}

func (f *fakeScheduleRepo) ResolveClinicians(_ context.Context, sel model.ClinicianSelector, weekday int) ([]*model.ClinicianWorkday, error) {
	f.resolveCalls++
	f.lastSelector = sel
	f.lastWeekday = weekday
	return f.workdays, nil
}

func (f *fakeScheduleRepo) ListForClinician(context.Context, uuid.UUID) ([]*model.WorkSchedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Upsert(context.Context, *model.WorkSchedule) error {
	return nil
}

type fakeAppointmentRepo struct {
	intervals  []*model.AppointmentInterval
	fetchCalls int
	lastIDs    []uuid.UUID
	lastDate   time.Time
}

func (f *fakeAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }

func (f *fakeAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FetchDayIntervals(_ context.Context, ids []uuid.UUID, date time.Time) ([]*model.AppointmentInterval, error) {
	f.fetchCalls++
	f.lastIDs = ids
	f.lastDate = date
	return f.intervals, nil
}

func (f *fakeAppointmentRepo) BookWithPatient(context.Context, *model.Patient, *model.Appointment) error {
	return nil
}

func (f *fakeAppointmentRepo) ListForReminder(context.Context, time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

func newTestService(t *testing.T, schedules *fakeScheduleRepo, appointments *fakeAppointmentRepo) *Service {
	t.Helper()
	svc, err := NewService(schedules, appointments, config.SchedulingConfig{
		Timezone:           "America/Mexico_City",
		MaxSharedTreatment: 3,
	})
	require.NoError(t, err)
	return svc
}

func TestGetAvailabilityWeekendShortCircuits(t *testing.T) {
	schedules := &fakeScheduleRepo{}
	appointments := &fakeAppointmentRepo{}
	svc := newTestService(t, schedules, appointments)

	for _, date := range []string{"2026-08-29", "2026-08-30"} {
		agendas, err := svc.GetAvailability(context.Background(), Query{
			Date:     date,
			Selector: model.SelectorBySpecialty("lenguaje"),
			Context:  model.ContextFirstVisit,
		})
		require.NoError(t, err)
		assert.NotNil(t, agendas)
		assert.Empty(t, agendas)
	}

	assert.Zero(t, schedules.resolveCalls, "weekend must not reach the repository")
	assert.Zero(t, appointments.fetchCalls)
}

func TestGetAvailabilityRejectsMalformedDate(t *testing.T) {
	svc := newTestService(t, &fakeScheduleRepo{}, &fakeAppointmentRepo{})

	_, err := svc.GetAvailability(context.Background(), Query{
		Date:     "29/08/2026",
		Selector: model.SelectorBySpecialty("lenguaje"),
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestGetAvailabilityResolvesIsoWeekday(t *testing.T) {
	schedules := &fakeScheduleRepo{}
	svc := newTestService(t, schedules, &fakeAppointmentRepo{})

	// 2026-08-31 is a Monday.
	_, err := svc.GetAvailability(context.Background(), Query{
		Date:     "2026-08-31",
		Selector: model.SelectorByName("garcía"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, schedules.lastWeekday)
	assert.Equal(t, model.SelectByName, schedules.lastSelector.Kind)
}

func TestGetAvailabilityNoMatchingClinicians(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	svc := newTestService(t, &fakeScheduleRepo{}, appointments)

	agendas, err := svc.GetAvailability(context.Background(), Query{
		Date:     "2026-08-31",
		Selector: model.SelectorBySpecialty("neurología"),
	})
	require.NoError(t, err)
	assert.NotNil(t, agendas)
	assert.Empty(t, agendas)
	assert.Zero(t, appointments.fetchCalls, "no clinicians means no appointment fetch")
}

func TestGetAvailabilityBuildsPerClinicianAgendas(t *testing.T) {
	busyID := uuid.New()
	idleID := uuid.New()

	schedules := &fakeScheduleRepo{
		workdays: []*model.ClinicianWorkday{
			{ClinicianID: busyID, Name: "Dra. García", Specialty: "Lenguaje", WindowStart: tod(t, "08:00"), WindowEnd: tod(t, "10:00")},
			{ClinicianID: idleID, Name: "Dr. Robles", Specialty: "Aprendizaje", WindowStart: tod(t, "09:00"), WindowEnd: tod(t, "11:00")},
		},
	}
	appointments := &fakeAppointmentRepo{
		intervals: []*model.AppointmentInterval{
			{ClinicianID: busyID, Start: tod(t, "08:00"), End: tod(t, "08:30"), Category: model.CategoryFirstVisit},
			{ClinicianID: busyID, Start: tod(t, "09:00"), End: tod(t, "09:30"), Category: model.CategoryTreatment},
		},
	}
	svc := newTestService(t, schedules, appointments)

	agendas, err := svc.GetAvailability(context.Background(), Query{
		Date:     "2026-08-31",
		Selector: model.SelectorBySpecialty("lenguaje"),
		Context:  model.ContextOngoingTreatment,
	})
	require.NoError(t, err)
	require.Len(t, agendas, 2)

	assert.ElementsMatch(t, []uuid.UUID{busyID, idleID}, appointments.lastIDs)

	busy := agendas[0]
	require.Equal(t, busyID, busy.ClinicianID)
	require.Len(t, busy.Agenda, 4)
	assert.False(t, busy.Agenda[0].Available, "first visit blocks treatment sharing")
	assert.Equal(t, model.SlotFirstVisit, busy.Agenda[0].Classification)
	assert.True(t, busy.Agenda[1].Available)
	assert.True(t, busy.Agenda[2].Available, "one treatment session still leaves room under the cap")
	assert.Equal(t, 1, busy.Agenda[2].OccupancyCount)
	assert.True(t, busy.Agenda[3].Available)

	idle := agendas[1]
	require.Equal(t, idleID, idle.ClinicianID)
	require.Len(t, idle.Agenda, 4)
	for _, slot := range idle.Agenda {
		assert.True(t, slot.Available)
		assert.Equal(t, model.SlotFree, slot.Classification)
	}
}

func TestNewServiceRejectsUnknownTimezone(t *testing.T) {
	_, err := NewService(&fakeScheduleRepo{}, &fakeAppointmentRepo{}, config.SchedulingConfig{
		Timezone: "Not/AZone",
	})
	require.Error(t, err)
}

