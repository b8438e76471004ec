package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

type scheduleRepository struct {
	*BaseRepository
}

func NewScheduleRepository(base BaseRepository) repository.ScheduleRepository {
	return &scheduleRepository{BaseRepository: &base}
}

// Matching for name/specialty is accent- and case-insensitive substring
// matching; requires the unaccent extension.
func (r *scheduleRepository) ResolveClinicians(ctx context.Context, sel model.ClinicianSelector, weekday int) ([]*model.ClinicianWorkday, error) {
	const baseQuery = `
		SELECT c.id AS clinician_id, c.name, c.specialty,
		       ws.window_start, ws.window_end
		FROM clinicians c
		JOIN work_schedules ws ON ws.clinician_id = c.id
		WHERE ws.weekday = $2
		  AND c.status = 'active'
	`

	var query string
	var arg interface{}

	switch sel.Kind {
	case model.SelectByID:
		query = baseQuery + " AND c.id = $1"
		arg = sel.ID
	case model.SelectByName:
		query = baseQuery + " AND unaccent(c.name) ILIKE unaccent($1)"
		arg = "%" + sel.Term + "%"
	case model.SelectBySpecialty:
		query = baseQuery + " AND unaccent(TRIM(c.specialty)) ILIKE unaccent($1)"
		arg = "%" + sel.Term + "%"
	default:
		return nil, fmt.Errorf("unknown selector kind: %s", sel.Kind)
	}

	var workdays []*model.ClinicianWorkday
	if err := r.db.SelectContext(ctx, &workdays, query, arg, weekday); err != nil {
		return nil, fmt.Errorf("failed to resolve clinicians: %w", err)
	}
	return workdays, nil
}

func (r *scheduleRepository) ListForClinician(ctx context.Context, clinicianID uuid.UUID) ([]*model.WorkSchedule, error) {
	query := `
		SELECT id, clinician_id, weekday, window_start, window_end
		FROM work_schedules
		WHERE clinician_id = $1
		ORDER BY weekday ASC, window_start ASC
	`
	var schedules []*model.WorkSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, clinicianID); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) Upsert(ctx context.Context, schedule *model.WorkSchedule) error {
	query := `
		INSERT INTO work_schedules (id, clinician_id, weekday, window_start, window_end)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (clinician_id, weekday)
		DO UPDATE SET window_start = EXCLUDED.window_start,
		              window_end = EXCLUDED.window_end
	`
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.ClinicianID,
		schedule.Weekday,
		schedule.WindowStart,
		schedule.WindowEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return nil
}
