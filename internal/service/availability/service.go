package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/config"
	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

// Query is one availability request after parameter parsing.
type Query struct {
	// Date is the calendar day, formatted 2006-01-02.
	Date     string
	Selector model.ClinicianSelector
	Context  model.SchedulingContext
}

// Service computes per-clinician slot agendas for a calendar day.
type Service struct {
	scheduleRepo    repository.ScheduleRepository
	appointmentRepo repository.AppointmentRepository
	policy          Policy
	location        *time.Location
}

func NewService(scheduleRepo repository.ScheduleRepository, appointmentRepo repository.AppointmentRepository, cfg config.SchedulingConfig) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduling timezone %q: %w", cfg.Timezone, err)
	}

	maxShared := cfg.MaxSharedTreatment
	if maxShared <= 0 {
		maxShared = 3
	}

	return &Service{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		policy:          Policy{MaxSharedTreatment: maxShared},
		location:        loc,
	}, nil
}

// GetAvailability resolves the matching clinicians working on the requested
// date and returns each one's classified slot agenda. Weekends return an
// empty result before any repository access; the clinic never operates on
// Saturday or Sunday.
func (s *Service) GetAvailability(ctx context.Context, query Query) ([]*model.ClinicianAgenda, error) {
	date, err := time.ParseInLocation("2006-01-02", query.Date, s.location)
	if err != nil {
		return nil, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err)
	}

	weekday := isoWeekday(date)
	if weekday > 5 {
		return []*model.ClinicianAgenda{}, nil
	}

	workdays, err := s.scheduleRepo.ResolveClinicians(ctx, query.Selector, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve clinicians: %w", err)
	}
	if len(workdays) == 0 {
		return []*model.ClinicianAgenda{}, nil
	}

	ids := make([]uuid.UUID, len(workdays))
	for i, wd := range workdays {
		ids[i] = wd.ClinicianID
	}

	intervals, err := s.appointmentRepo.FetchDayIntervals(ctx, ids, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	byClinician := make(map[uuid.UUID][]*model.AppointmentInterval, len(workdays))
	for _, iv := range intervals {
		byClinician[iv.ClinicianID] = append(byClinician[iv.ClinicianID], iv)
	}

	agendas := make([]*model.ClinicianAgenda, 0, len(workdays))
	for _, wd := range workdays {
		agendas = append(agendas, &model.ClinicianAgenda{
			ClinicianID: wd.ClinicianID,
			Name:        wd.Name,
			Specialty:   wd.Specialty,
			Agenda:      BuildAgenda(wd.WindowStart, wd.WindowEnd, byClinician[wd.ClinicianID], query.Context, s.policy),
		})
	}

	return agendas, nil
}

// isoWeekday maps Go's Sunday-first weekday to ISO numbering, Monday=1
// through Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
