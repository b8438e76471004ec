package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/service/patient"
	"github.com/openclinic/agenda-api/internal/service/visit"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
	"github.com/openclinic/agenda-api/pkg/httputil"
)

type Handler struct {
	service  *patient.Service
	visitSvc *visit.Service
}

func NewHandler(service *patient.Service, visitSvc *visit.Service) *Handler {
	return &Handler{
		service:  service,
		visitSvc: visitSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/pending", h.ListPending)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
		patients.GET("/:id/visits", h.VisitHistory)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
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
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient id", err))
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
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	var req model.UpdatePatientRequest
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

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

// List supports accent-insensitive name search plus service-area and status
// filters.
func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context(), &model.PatientFilters{
		SearchTerm:  c.Query("search"),
		ServiceArea: c.Query("service_area"),
		Status:      model.PatientStatus(c.Query("status")),
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

// ListPending returns registered patients still waiting for their first
// booking.
func (h *Handler) ListPending(c *gin.Context) {
	patients, err := h.service.ListPendingFirstAppointment(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) VisitHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid patient id", err))
		return
	}

	notes, err := h.visitSvc.History(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, notes)
}
