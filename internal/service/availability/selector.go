package availability

import (
	"strings"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

// BuildSelector derives the clinician lookup from the raw request
// parameters. When more than one is present, clinician ID wins over the
// name search, which wins over the specialty filter.
func BuildSelector(clinicianID, name, specialty string) (model.ClinicianSelector, error) {
	clinicianID = strings.TrimSpace(clinicianID)
	name = strings.TrimSpace(name)
	specialty = strings.TrimSpace(specialty)

	switch {
	case clinicianID != "":
		id, err := uuid.Parse(clinicianID)
		if err != nil {
			return model.ClinicianSelector{}, apperrors.BadRequest("invalid clinician id", err)
		}
		return model.SelectorByID(id), nil
	case name != "":
		return model.SelectorByName(name), nil
	case specialty != "":
		return model.SelectorBySpecialty(specialty), nil
	default:
		return model.ClinicianSelector{}, apperrors.BadRequest("a clinician, name or specialty is required", nil)
	}
}
