package model

import (
	"github.com/google/uuid"
)

// SelectorKind discriminates the clinician lookup modes.
type SelectorKind string

const (
	SelectByID        SelectorKind = "id"
	SelectByName      SelectorKind = "name"
	SelectBySpecialty SelectorKind = "specialty"
)

// ClinicianSelector is a tagged variant: exactly one lookup mode applies.
// Precedence between request parameters (id > name > specialty) is decided
// where the selector is built, never here.
type ClinicianSelector struct {
	Kind SelectorKind
	ID   uuid.UUID
	Term string
}

func SelectorByID(id uuid.UUID) ClinicianSelector {
	return ClinicianSelector{Kind: SelectByID, ID: id}
}

func SelectorByName(term string) ClinicianSelector {
	return ClinicianSelector{Kind: SelectByName, Term: term}
}

func SelectorBySpecialty(term string) ClinicianSelector {
	return ClinicianSelector{Kind: SelectBySpecialty, Term: term}
}
