package appointment

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/service/appointment"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/httputil"
)

type Handler struct {
	service appointment.AppointmentService
}

func NewHandler(service appointment.AppointmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("", h.BookAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context(), c.Query("status"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]appointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, newAppointmentView(a))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newAppointmentView(*a))
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid request body", err))
		return
	}

	a, err := h.service.BookAppointment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, newAppointmentView(*a))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.service.CancelAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, newAppointmentView(*a))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, errors.NewBadRequest("invalid appointment ID", err))
		return 0, false
	}
	return id, true
}

type appointmentView struct {
	ID              int64       `json:"id"`
	PetID           int64       `json:"pet_id"`
	PetName         string      `json:"pet_name"`
	ServiceID       int64       `json:"service_id"`
	ServiceName     string      `json:"service_name"`
	ServicePrice    model.Money `json:"service_price"`
	PriceLabel      string      `json:"price_label"`
	DurationMinutes int         `json:"duration_minutes"`
	ScheduleTime    time.Time   `json:"schedule_time"`
	Status          string      `json:"status"`
	StatusLabel     string      `json:"status_label"`
	StatusColor     string      `json:"status_color"`
	CanBeCanceled   bool        `json:"can_be_canceled"`
	IsPast          bool        `json:"is_past"`
	Notes           string      `json:"notes,omitempty"`
}

func newAppointmentView(a model.Appointment) appointmentView {
	return appointmentView{
		ID:              a.ID,
		PetID:           a.PetID,
		PetName:         a.PetName,
		ServiceID:       a.Service.ID,
		ServiceName:     a.Service.Name,
		ServicePrice:    a.Service.Price,
		PriceLabel:      a.Service.Price.Format(),
		DurationMinutes: a.Service.DurationMinutes,
		ScheduleTime:    a.ScheduleTime,
		Status:          string(a.Status),
		StatusLabel:     a.StatusLabel(),
		StatusColor:     a.StatusColor(),
		CanBeCanceled:   a.CanBeCanceled(),
		IsPast:          a.IsPast(),
		Notes:           a.Notes,
	}
}
