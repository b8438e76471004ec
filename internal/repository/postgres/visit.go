package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

type visitRepository struct {
	*BaseRepository
}

func NewVisitRepository(base BaseRepository) repository.VisitRepository {
	return &visitRepository{BaseRepository: &base}
}

// RegisterSession writes the note and marks the appointment attended
// atomically; a half-registered session must never be observable.
func (r *visitRepository) RegisterSession(ctx context.Context, note *model.VisitNote) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		note.ID = uuid.New()
		note.CreatedAt = time.Now()
		note.UpdatedAt = time.Now()

		insertNote := `
			INSERT INTO visit_notes (id, appointment_id, patient_id, clinician_id,
			                         summary, treatment, next_steps,
			                         created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, insertNote,
			note.ID, note.AppointmentID, note.PatientID, note.ClinicianID,
			note.Summary, note.Treatment, note.NextSteps,
			note.CreatedAt, note.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert visit note: %w", err)
		}

		markAttended := `
			UPDATE appointments
			SET status = $1, updated_at = $2
			WHERE id = $3
		`
		result, err := tx.ExecContext(ctx, markAttended,
			model.AppointmentStatusAttended, time.Now(), note.AppointmentID)
		if err != nil {
			return fmt.Errorf("failed to mark appointment attended: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("appointment not found")
		}

		return nil
	})
}

func (r *visitRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VisitNote, error) {
	query := `
		SELECT id, appointment_id, patient_id, clinician_id,
		       summary, treatment, next_steps, created_at, updated_at
		FROM visit_notes
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var notes []*model.VisitNote
	err := r.db.SelectContext(ctx, &notes, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visit notes: %w", err)
	}
	return notes, nil
}
