package model

import (
	"github.com/google/uuid"
)

// WorkSchedule is a clinician's working window for one weekday.
// Weekday follows ISO numbering, Monday=1 through Sunday=7; the clinic
// only defines rows for Monday through Friday.
type WorkSchedule struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClinicianID uuid.UUID `db:"clinician_id" json:"clinician_id"`
	Weekday     int       `db:"weekday" json:"weekday" validate:"min=1,max=5"`
	WindowStart TimeOfDay `db:"window_start" json:"window_start" validate:"min=0,max=1439"`
	WindowEnd   TimeOfDay `db:"window_end" json:"window_end" validate:"min=0,max=1439"`
}

// ClinicianWorkday is the join of a clinician with their working window
// for a given weekday, as resolved for availability computation.
type ClinicianWorkday struct {
	ClinicianID uuid.UUID `db:"clinician_id" json:"clinician_id"`
	Name        string    `db:"name" json:"name"`
	Specialty   string    `db:"specialty" json:"specialty"`
	WindowStart TimeOfDay `db:"window_start" json:"window_start"`
	WindowEnd   TimeOfDay `db:"window_end" json:"window_end"`
}
