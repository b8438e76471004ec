package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	// AppointmentStatusLinked marks a first visit handed off to reception
	// for same-day intake.
	AppointmentStatusLinked    AppointmentStatus = "linked"
	AppointmentStatusAttended  AppointmentStatus = "attended"
	AppointmentStatusMissed    AppointmentStatus = "missed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentCategory distinguishes the booking policy class of a visit.
type AppointmentCategory string

const (
	// CategoryFirstVisit is an initial intake evaluation.
	CategoryFirstVisit AppointmentCategory = "first_visit"
	// CategoryLinkedFirstVisit is an intake re-routed to reception; it
	// blocks a slot the same way a first visit does.
	CategoryLinkedFirstVisit AppointmentCategory = "linked"
	// CategoryTreatment is an ongoing-treatment program session.
	CategoryTreatment AppointmentCategory = "treatment"
)

// IsFirstVisitClass reports whether the category occupies a slot
// exclusively like an intake evaluation.
func (c AppointmentCategory) IsFirstVisitClass() bool {
	return c == CategoryFirstVisit || c == CategoryLinkedFirstVisit
}

type Appointment struct {
	Base
	ClinicianID   uuid.UUID           `db:"clinician_id" json:"clinician_id"`
	PatientID     uuid.UUID           `db:"patient_id" json:"patient_id"`
	Date          time.Time           `db:"date" json:"date"`
	StartTime     TimeOfDay           `db:"start_time" json:"start_time"`
	EndTime       TimeOfDay           `db:"end_time" json:"end_time"`
	Category      AppointmentCategory `db:"category" json:"category"`
	Status        AppointmentStatus   `db:"status" json:"status"`
	ServiceArea   string              `db:"service_area" json:"service_area"`
	ProgramNumber int                 `db:"program_number" json:"program_number"`
	SessionIndex  int                 `db:"session_index" json:"session_index"`
	SessionTotal  int                 `db:"session_total" json:"session_total"`
	Notes         string              `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}

// AppointmentInterval is the reduced projection the availability engine
// consumes: owning clinician, start, end and category for one booked visit.
type AppointmentInterval struct {
	ClinicianID uuid.UUID           `db:"clinician_id" json:"clinician_id"`
	Start       TimeOfDay           `db:"start_time" json:"start"`
	End         TimeOfDay           `db:"end_time" json:"end"`
	Category    AppointmentCategory `db:"category" json:"category"`
}

// CreateAppointmentRequest books a visit, creating or updating the patient
// record in the same transaction (walk-in intake flow).
type CreateAppointmentRequest struct {
	Patient       BookingPatient      `json:"patient" binding:"required"`
	ClinicianID   uuid.UUID           `json:"clinician_id" binding:"required"`
	Date          string              `json:"date" binding:"required"`
	StartTime     TimeOfDay           `json:"start_time" binding:"required"`
	EndTime       TimeOfDay           `json:"end_time" binding:"required"`
	Category      AppointmentCategory `json:"category" binding:"required,oneof=first_visit linked treatment"`
	ServiceArea   string              `json:"service_area"`
	ProgramNumber int                 `json:"program_number"`
	SessionIndex  int                 `json:"session_index"`
	SessionTotal  int                 `json:"session_total"`
	Notes         string              `json:"notes" binding:"max=1000"`
}

// BookingPatient is the patient payload embedded in a booking request.
// When ID is set the existing record is updated instead of inserted.
type BookingPatient struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name" binding:"required"`
	Phone     string     `json:"phone"`
	Diagnosis string     `json:"diagnosis"`
	Reason    string     `json:"reason"`
}

type UpdateAttendanceRequest struct {
	Attended bool   `json:"attended"`
	Paid     bool   `json:"paid"`
	Notes    string `json:"notes" binding:"max=1000"`
}

type AppointmentFilters struct {
	ClinicianID uuid.UUID
	PatientID   uuid.UUID
	Status      AppointmentStatus
	Category    AppointmentCategory
	Date        time.Time
}
