package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

type appointmentRepository struct {
	*BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: &base}
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, clinician_id, patient_id, date, start_time, end_time,
		       category, status, service_area, program_number,
		       session_index, session_total, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET date = $1, start_time = $2, end_time = $3, category = $4,
		    status = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Date,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Category,
		appointment.Status,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}

	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, clinician_id, patient_id, date, start_time, end_time,
		       category, status, service_area, program_number,
		       session_index, session_total, notes, created_at, updated_at
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.ClinicianID != uuid.Nil {
		query += fmt.Sprintf(" AND clinician_id = $%d", argCount)
		args = append(args, filters.ClinicianID)
		argCount++
	}

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, filters.Category)
		argCount++
	}

	if !filters.Date.IsZero() {
		query += fmt.Sprintf(" AND date = $%d", argCount)
		args = append(args, filters.Date.Format("2006-01-02"))
		argCount++
	}

	query += " ORDER BY date ASC, start_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// FetchDayIntervals is the availability engine's read: one exact-date fetch
// reduced to clinician, interval and category. Cancelled visits do not
// occupy slots.
func (r *appointmentRepository) FetchDayIntervals(ctx context.Context, clinicianIDs []uuid.UUID, date time.Time) ([]*model.AppointmentInterval, error) {
	query := `
		SELECT clinician_id, start_time, end_time, category
		FROM appointments
		WHERE clinician_id = ANY($1)
		  AND date = $2
		  AND status != 'cancelled'
	`
	ids := make([]string, len(clinicianIDs))
	for i, id := range clinicianIDs {
		ids[i] = id.String()
	}

	var intervals []*model.AppointmentInterval
	err := r.db.SelectContext(ctx, &intervals, query, pq.Array(ids), date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day intervals: %w", err)
	}
	return intervals, nil
}

// BookWithPatient creates the appointment and the patient record together.
// A patient with a known ID is updated in place (rebooking or referral);
// otherwise a new record is inserted. Both writes share one transaction.
func (r *appointmentRepository) BookWithPatient(ctx context.Context, patient *model.Patient, appointment *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now()

		if patient.ID == uuid.Nil {
			patient.ID = uuid.New()
			patient.CreatedAt = now
			patient.UpdatedAt = now
			if patient.Status == "" {
				patient.Status = model.PatientStatusActive
			}

			insertPatient := `
				INSERT INTO patients (id, name, phone, diagnosis, reason,
				                      service_area, program_number, status,
				                      created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`
			if _, err := tx.ExecContext(ctx, insertPatient,
				patient.ID, patient.Name, patient.Phone, patient.Diagnosis,
				patient.Reason, patient.ServiceArea, patient.ProgramNumber,
				patient.Status, patient.CreatedAt, patient.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert patient: %w", err)
			}
		} else {
			patient.UpdatedAt = now

			updatePatient := `
				UPDATE patients
				SET name = $1, phone = $2, diagnosis = $3, reason = $4,
				    service_area = $5, program_number = $6, updated_at = $7
				WHERE id = $8
			`
			if _, err := tx.ExecContext(ctx, updatePatient,
				patient.Name, patient.Phone, patient.Diagnosis, patient.Reason,
				patient.ServiceArea, patient.ProgramNumber, patient.UpdatedAt,
				patient.ID,
			); err != nil {
				return fmt.Errorf("failed to update patient: %w", err)
			}
		}

		appointment.ID = uuid.New()
		appointment.PatientID = patient.ID
		appointment.CreatedAt = now
		appointment.UpdatedAt = now

		insertAppointment := `
			INSERT INTO appointments (id, clinician_id, patient_id, date,
			                          start_time, end_time, category, status,
			                          service_area, program_number,
			                          session_index, session_total, notes,
			                          created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`
		if _, err := tx.ExecContext(ctx, insertAppointment,
			appointment.ID, appointment.ClinicianID, appointment.PatientID,
			appointment.Date, appointment.StartTime, appointment.EndTime,
			appointment.Category, appointment.Status, appointment.ServiceArea,
			appointment.ProgramNumber, appointment.SessionIndex,
			appointment.SessionTotal, appointment.Notes,
			appointment.CreatedAt, appointment.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}

		return nil
	})
}

// ListForReminder returns next-day scheduled appointments for the reminder
// dispatcher.
func (r *appointmentRepository) ListForReminder(ctx context.Context, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, clinician_id, patient_id, date, start_time, end_time,
		       category, status, service_area, program_number,
		       session_index, session_total, notes, created_at, updated_at
		FROM appointments
		WHERE date = $1
		  AND status = 'scheduled'
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for reminder: %w", err)
	}
	return appointments, nil
}
