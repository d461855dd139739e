package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointment.CreateAppointment
	confirm  *appointment.ConfirmAppointment
	cancel   *appointment.CancelAppointment
	complete *appointment.CompleteAppointment
	list     *appointment.ListAppointmentsByDate
	log      *zap.Logger
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	confirm *appointment.ConfirmAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	list *appointment.ListAppointmentsByDate,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
		list:     list,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StylistID     uint   `json:"stylist_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	p := currentPrincipal(c)
	in := appointment.CreateAppointmentInput{
		StylistID:     req.StylistID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	}

	if p.Role == auth.RoleCustomer {
		in.ActorID = &p.UserID
	} else {
		scope, ok := p.branchScope()
		if !ok {
			httperr.Forbidden(c, "no_branch", "User is not assigned to a branch.")
			return
		}
		in.BranchID = scope
	}

	if in.CustomerName == "" {
		httperr.BadRequest(c, "customer_name_required", "Customer name is required.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	_, scope, ok := requireScope(c)
	if !ok {
		return
	}

	stylistID, ok := uintQuery(c, "stylist_id")
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_parameter", "date must be YYYY-MM-DD.")
		return
	}

	out, err := h.list.Execute(c.Request.Context(), scope, stylistID, date)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

type transitionFunc func(*gin.Context, appointment.Scope, uint) (*models.Appointment, error)

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(c *gin.Context, s appointment.Scope, id uint) (*models.Appointment, error) {
		return h.confirm.Execute(c.Request.Context(), s, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, s appointment.Scope, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), s, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, s appointment.Scope, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), s, id)
	})
}

func (h *AppointmentHandler) transition(c *gin.Context, run transitionFunc) {
	p, scope, ok := requireScope(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := run(c, appointment.Scope{BranchID: scope, ActorID: p.UserID}, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}
