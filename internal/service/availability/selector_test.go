package availability

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclinic/agenda-api/internal/model"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
)

func TestBuildSelectorPrecedence(t *testing.T) {
	id := uuid.New()

	sel, err := BuildSelector(id.String(), "garcía", "lenguaje")
	require.NoError(t, err)
	assert.Equal(t, model.SelectByID, sel.Kind)
	assert.Equal(t, id, sel.ID)

	sel, err = BuildSelector("", "garcía", "lenguaje")
	require.NoError(t, err)
	assert.Equal(t, model.SelectByName, sel.Kind)
	assert.Equal(t, "garcía", sel.Term)

	sel, err = BuildSelector("", "", "lenguaje")
	require.NoError(t, err)
	assert.Equal(t, model.SelectBySpecialty, sel.Kind)
	assert.Equal(t, "lenguaje", sel.Term)
}

func TestBuildSelectorTrimsWhitespace(t *testing.T) {
	sel, err := BuildSelector("", "  garcía  ", "")
	require.NoError(t, err)
	assert.Equal(t, "garcía", sel.Term)
}

func TestBuildSelectorRejectsMalformedID(t *testing.T) {
	_, err := BuildSelector("not-a-uuid", "", "")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestBuildSelectorRequiresOneParameter(t *testing.T) {
	_, err := BuildSelector("", "", "   ")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}
