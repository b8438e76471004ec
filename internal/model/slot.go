package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotDuration is the fixed width of every agenda slot.
const SlotDuration = 30 * time.Minute

// SchedulingContext selects the booking policy applied when flagging
// slot availability.
type SchedulingContext string

const (
	// ContextNone is the informational, read-only calendar view.
	ContextNone SchedulingContext = "none"
	// ContextFirstVisit books an intake evaluation; slots must be empty.
	ContextFirstVisit SchedulingContext = "first_visit"
	// ContextOngoingTreatment books a program session; sessions may share
	// a slot up to the configured cap, never with a first visit.
	ContextOngoingTreatment SchedulingContext = "ongoing_treatment"
)

// ParseSchedulingContext maps a request parameter to a context,
// defaulting to ContextNone for empty or unknown values.
func ParseSchedulingContext(s string) SchedulingContext {
	switch SchedulingContext(s) {
	case ContextFirstVisit, ContextOngoingTreatment:
		return SchedulingContext(s)
	default:
		return ContextNone
	}
}

type SlotClassification string

const (
	SlotFree       SlotClassification = "free"
	SlotFirstVisit SlotClassification = "first_visit"
	SlotOccupied   SlotClassification = "occupied"
)

// Slot is one fixed-width interval of a clinician's agenda, derived per
// request and never persisted.
type Slot struct {
	Start          TimeOfDay          `json:"start"`
	End            TimeOfDay          `json:"end"`
	Available      bool               `json:"available"`
	OccupancyCount int                `json:"occupancy_count"`
	Classification SlotClassification `json:"classification"`
}

// ClinicianAgenda is the ordered slot sequence for one clinician on the
// requested date.
type ClinicianAgenda struct {
	ClinicianID uuid.UUID `json:"clinician_id"`
	Name        string    `json:"name"`
	Specialty   string    `json:"specialty"`
	Agenda      []Slot    `json:"agenda"`
}
