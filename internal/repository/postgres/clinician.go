package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/repository"
)

type clinicianRepository struct {
	*BaseRepository
}

func NewClinicianRepository(base BaseRepository) repository.ClinicianRepository {
	return &clinicianRepository{BaseRepository: &base}
}

func (r *clinicianRepository) Create(ctx context.Context, clinician *model.Clinician) error {
	query := `
		INSERT INTO clinicians (id, name, email, specialty, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	clinician.ID = uuid.New()
	clinician.CreatedAt = time.Now()
	clinician.UpdatedAt = time.Now()
	if clinician.Status == "" {
		clinician.Status = model.ClinicianStatusActive
	}

	_, err := r.db.ExecContext(ctx, query,
		clinician.ID,
		clinician.Name,
		clinician.Email,
		clinician.Specialty,
		clinician.Status,
		clinician.CreatedAt,
		clinician.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinician: %w", err)
	}
	return nil
}

func (r *clinicianRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at, updated_at
		FROM clinicians
		WHERE id = $1
	`
	var clinician model.Clinician
	err := r.db.GetContext(ctx, &clinician, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinician: %w", err)
	}
	return &clinician, nil
}

func (r *clinicianRepository) Update(ctx context.Context, clinician *model.Clinician) error {
	query := `
		UPDATE clinicians
		SET name = $1, email = $2, specialty = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	clinician.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		clinician.Name,
		clinician.Email,
		clinician.Specialty,
		clinician.Status,
		clinician.UpdatedAt,
		clinician.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinician: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clinician not found")
	}

	return nil
}

func (r *clinicianRepository) List(ctx context.Context, filters *model.ClinicianFilters) ([]*model.Clinician, error) {
	query := `
		SELECT id, name, email, specialty, status, created_at, updated_at
		FROM clinicians
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.SearchTerm != "" {
		query += fmt.Sprintf(" AND unaccent(name) ILIKE unaccent($%d)", argCount)
		args = append(args, "%"+filters.SearchTerm+"%")
		argCount++
	}

	if filters.Specialty != "" {
		query += fmt.Sprintf(" AND unaccent(TRIM(specialty)) ILIKE unaccent($%d)", argCount)
		args = append(args, "%"+filters.Specialty+"%")
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY name ASC"

	var clinicians []*model.Clinician
	err := r.db.SelectContext(ctx, &clinicians, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinicians: %w", err)
	}
	return clinicians, nil
}
