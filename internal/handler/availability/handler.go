package availability

import (
	"github.com/gin-gonic/gin"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/service/availability"
	"github.com/openclinic/agenda-api/pkg/httputil"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/availability", h.GetAvailability)
}

// GetAvailability returns classified slot agendas for the clinicians
// matching the query. Selector parameters: clinician_id wins over name,
// name wins over specialty; at least one is required, along with the date.
func (h *Handler) GetAvailability(c *gin.Context) {
	selector, err := availability.BuildSelector(
		c.Query("clinician_id"),
		c.Query("name"),
		c.Query("specialty"),
	)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	agendas, err := h.service.GetAvailability(c.Request.Context(), availability.Query{
		Date:     c.Query("date"),
		Selector: selector,
		Context:  model.ParseSchedulingContext(c.Query("context")),
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, agendas)
}
