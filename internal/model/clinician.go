package model

import (
	"time"
)

type ClinicianStatus string

const (
	ClinicianStatusActive   ClinicianStatus = "active"
	ClinicianStatusInactive ClinicianStatus = "inactive"
)

// Clinician is a member of the treating staff (physical therapy, psychology,
// speech therapy, medicine, social work).
type Clinician struct {
	Base
	Name      string          `db:"name" json:"name"`
	Email     string          `db:"email" json:"email"`
	Specialty string          `db:"specialty" json:"specialty"`
	Status    ClinicianStatus `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateClinicianRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"required"`
}

type UpdateClinicianRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Specialty *string `json:"specialty"`
	Status    *string `json:"status"`
}

type ClinicianFilters struct {
	SearchTerm string
	Specialty  string
	Status     ClinicianStatus
}
