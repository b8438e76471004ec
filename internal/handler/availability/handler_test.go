package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/agenda-api/internal/config"
	"github.com/openclinic/agenda-api/internal/model"
	availabilityService "github.com/openclinic/agenda-api/internal/service/availability"
)

type stubScheduleRepo struct {
	workdays []*model.ClinicianWorkday
}

func (s *stubScheduleRepo) ResolveClinicians(context.Context, model.ClinicianSelector, int) ([]*model.ClinicianWorkday, error) {
	return s.workdays, nil
}

func (s *stubScheduleRepo) ListForClinician(context.Context, uuid.UUID) ([]*model.WorkSchedule, error) {
	return nil, nil
}

func (s *stubScheduleRepo) Upsert(context.Context, *model.WorkSchedule) error { return nil }

type stubAppointmentRepo struct{}

func (s *stubAppointmentRepo) Get(context.Context, uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }

func (s *stubAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) FetchDayIntervals(context.Context, []uuid.UUID, time.Time) ([]*model.AppointmentInterval, error) {
	return nil, nil
}

func (s *stubAppointmentRepo) BookWithPatient(context.Context, *model.Patient, *model.Appointment) error {
	return nil
}

func (s *stubAppointmentRepo) ListForReminder(context.Context, time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

func setupRouter(t *testing.T, schedules *stubScheduleRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := availabilityService.NewService(schedules, &stubAppointmentRepo{}, config.SchedulingConfig{
		Timezone:           "America/Mexico_City",
		MaxSharedTreatment: 3,
	})
	require.NoError(t, err)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailabilityRequiresSelector(t *testing.T) {
	r := setupRouter(t, &stubScheduleRepo{})

	w := doRequest(r, "/api/v1/availability?date=2026-08-31")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailabilityRejectsBadDate(t *testing.T) {
	r := setupRouter(t, &stubScheduleRepo{})

	w := doRequest(r, "/api/v1/availability?date=tomorrow&specialty=lenguaje")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailabilityWeekendReturnsEmptyList(t *testing.T) {
	r := setupRouter(t, &stubScheduleRepo{})

	w := doRequest(r, "/api/v1/availability?date=2026-08-29&specialty=lenguaje")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Data)
}

func TestGetAvailabilityReturnsAgendas(t *testing.T) {
	clinicianID := uuid.New()
	windowStart, err := model.ParseTimeOfDay("08:00")
	require.NoError(t, err)
	windowEnd, err := model.ParseTimeOfDay("10:00")
	require.NoError(t, err)

	r := setupRouter(t, &stubScheduleRepo{
		workdays: []*model.ClinicianWorkday{
			{ClinicianID: clinicianID, Name: "Dra. García", Specialty: "Lenguaje", WindowStart: windowStart, WindowEnd: windowEnd},
		},
	})

	w := doRequest(r, "/api/v1/availability?date=2026-08-31&specialty=lenguaje&context=first_visit")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    []*model.ClinicianAgenda `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, clinicianID, body.Data[0].ClinicianID)
	assert.Len(t, body.Data[0].Agenda, 4)
	for _, slot := range body.Data[0].Agenda {
		assert.True(t, slot.Available)
	}
}
