package model

import (
	"time"

	"github.com/google/uuid"
)

// VisitNote is the clinical record written when a session is registered.
type VisitNote struct {
	Base
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	ClinicianID   uuid.UUID `db:"clinician_id" json:"clinician_id"`
	Summary       string    `db:"summary" json:"summary"`
	Treatment     string    `db:"treatment" json:"treatment"`
	NextSteps     string    `db:"next_steps" json:"next_steps"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterSessionRequest records a held session: the visit note is written
// and the appointment is marked attended in one transaction.
type RegisterSessionRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	ClinicianID   uuid.UUID `json:"clinician_id" binding:"required"`
	Summary       string    `json:"summary" binding:"required,max=4000"`
	Treatment     string    `json:"treatment" binding:"max=4000"`
	NextSteps     string    `json:"next_steps" binding:"max=4000"`
}
