package model

import (
	"time"
)

type PatientStatus string

const (
	PatientStatusActive     PatientStatus = "active"
	PatientStatusPending    PatientStatus = "pending"
	PatientStatusDischarged PatientStatus = "discharged"
)

type Patient struct {
	Base
	Name          string        `db:"name" json:"name"`
	Phone         string        `db:"phone" json:"phone"`
	Diagnosis     string        `db:"diagnosis" json:"diagnosis"`
	Reason        string        `db:"reason" json:"reason"`
	ServiceArea   string        `db:"service_area" json:"service_area"`
	ProgramNumber int           `db:"program_number" json:"program_number"`
	Status        PatientStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Diagnosis   string `json:"diagnosis"`
	Reason      string `json:"reason"`
	ServiceArea string `json:"service_area"`
}

type UpdatePatientRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Diagnosis     *string `json:"diagnosis"`
	Reason        *string `json:"reason"`
	ServiceArea   *string `json:"service_area"`
	ProgramNumber *int    `json:"program_number"`
	Status        *string `json:"status"`
}

type PatientFilters struct {
	SearchTerm  string
	ServiceArea string
	Status      PatientStatus
}
