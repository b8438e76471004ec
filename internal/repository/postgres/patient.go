package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

type patientRepository struct {
	*BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{BaseRepository: &base}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, name, phone, diagnosis, reason, service_area,
		                      program_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	if patient.Status == "" {
		patient.Status = model.PatientStatusPending
	}

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.Phone,
		patient.Diagnosis,
		patient.Reason,
		patient.ServiceArea,
		patient.ProgramNumber,
		patient.Status,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, name, phone, diagnosis, reason, service_area,
		       program_number, status, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, phone = $2, diagnosis = $3, reason = $4,
		    service_area = $5, program_number = $6, status = $7, updated_at = $8
		WHERE id = $9
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.Name,
		patient.Phone,
		patient.Diagnosis,
		patient.Reason,
		patient.ServiceArea,
		patient.ProgramNumber,
		patient.Status,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM patients
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}

	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `
		SELECT id, name, phone, diagnosis, reason, service_area,
		       program_number, status, created_at, updated_at
		FROM patients
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.SearchTerm != "" {
		query += fmt.Sprintf(" AND unaccent(name) ILIKE unaccent($%d)", argCount)
		args = append(args, "%"+filters.SearchTerm+"%")
		argCount++
	}

	if filters.ServiceArea != "" {
		query += fmt.Sprintf(" AND service_area = $%d", argCount)
		args = append(args, filters.ServiceArea)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY name ASC"

	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListPendingFirstAppointment(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT p.id, p.name, p.phone, p.diagnosis, p.reason, p.service_area,
		       p.program_number, p.status, p.created_at, p.updated_at
		FROM patients p
		LEFT JOIN appointments a ON a.patient_id = p.id
		WHERE a.id IS NULL
		  AND p.status = 'pending'
		ORDER BY p.created_at ASC
	`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending patients: %w", err)
	}
	return patients, nil
}
