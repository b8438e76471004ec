package visit

import (
	"github.com/gin-gonic/gin"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/service/visit"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
	"github.com/openclinic/agenda-api/pkg/httputil"
)

type Handler struct {
	service *visit.Service
}

func NewHandler(service *visit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sessions", h.RegisterSession)
}

// RegisterSession records a held session: the clinical note is written and
// the appointment is marked attended in one transaction.
func (h *Handler) RegisterSession(c *gin.Context) {
	var req model.RegisterSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	note, err := h.service.RegisterSession(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, note)
}
