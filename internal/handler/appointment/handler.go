package appointment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
	"github.com/openclinic/agenda-api/internal/service/appointment"
	apperrors "github.com/openclinic/agenda-api/pkg/errors"
	"github.com/openclinic/agenda-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.List)
		appointments.GET("/agenda", h.DayAgenda)
		appointments.GET("/first-visits", h.FirstVisits)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id/attendance", h.UpdateAttendance)
		appointments.POST("/:id/handoff", h.HandoffToReception)
		appointments.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Book(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	booked, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, booked)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{
		Status:   model.AppointmentStatus(c.Query("status")),
		Category: model.AppointmentCategory(c.Query("category")),
	}

	if raw := c.Query("clinician_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
			return
		}
		filters.ClinicianID = id
	}
	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid patient id", err))
			return
		}
		filters.PatientID = id
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

// DayAgenda returns one clinician's appointments for a calendar day.
func (h *Handler) DayAgenda(c *gin.Context) {
	id, err := uuid.Parse(c.Query("clinician_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid clinician id", err))
		return
	}

	agenda, err := h.service.DayAgenda(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, agenda)
}

// FirstVisits lists the day's intake evaluations for the reception desk.
func (h *Handler) FirstVisits(c *gin.Context) {
	visits, err := h.service.FirstVisitsForDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, visits)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	var req model.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.UpdateAttendance(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) HandoffToReception(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	updated, err := h.service.HandoffToReception(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment id", err))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"cancelled": true})
}
