package clinician

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/service/clinician"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
	"github.com/openclinic/agenda-api/pkg/httputil"
)

type Handler struct {
	service *clinician.Service
}

func NewHandler(service *clinician.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinicians := r.Group("/clinicians")
	{
		clinicians.POST("", h.Create)
		clinicians.GET("", h.List)
		clinicians.GET("/:id", h.Get)
		clinicians.PUT("/:id", h.Update)
		clinicians.GET("/:id/schedule", h.GetSchedule)
		clinicians.PUT("/:id/schedule", h.SetSchedule)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClinicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
		return
	}

	var req model.UpdateClinicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}

// List is the clinician directory: accent-insensitive name search plus
// specialty and status filters.
func (h *Handler) List(c *gin.Context) {
	clinicians, err := h.service.List(c.Request.Context(), &model.ClinicianFilters{
		SearchTerm: c.Query("search"),
		Specialty:  c.Query("specialty"),
		Status:     model.ClinicianStatus(c.Query("status")),
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, clinicians)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
		return
	}

	schedules, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, schedules)
}

func (h *Handler) SetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
		return
	}

	var schedule model.WorkSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	schedule.ClinicianID = id

	if err := h.service.SetSchedule(c.Request.Context(), &schedule); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, schedule)
}
