package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type HolidayStore interface {
	Create(ctx context.Context, h *models.Holiday) error
	List(ctx context.Context, branchID *uint) ([]models.Holiday, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type HolidayHandler struct {
	store HolidayStore
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewHolidayHandler(store HolidayStore, audit *audit.Dispatcher, log *zap.Logger) *HolidayHandler {
	return &HolidayHandler{store: store, audit: audit, log: log}
}

type CreateHolidayRequest struct {
	BranchID        *uint  `json:"branch_id"`
	Date            string `json:"date" binding:"required"`
	Name            string `json:"name" binding:"required"`
	RecurringYearly bool   `json:"recurring_yearly"`
}

func (h *HolidayHandler) Create(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	holiday := models.Holiday{
		BranchID:        req.BranchID,
		Date:            datatypes.Date(date),
		Name:            req.Name,
		RecurringYearly: req.RecurringYearly,
	}
	if err := h.store.Create(c.Request.Context(), &holiday); err != nil {
		writeError(c, h.log, err)
		return
	}

	p := currentPrincipal(c)
	var branchID uint
	if req.BranchID != nil {
		branchID = *req.BranchID
	}
	h.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   &p.UserID,
		Action:   "holiday_created",
		Entity:   "holiday",
		EntityID: &holiday.ID,
	})

	httpresp.Created(c, holiday)
}

// List returns every holiday, or those applying to ?branch_id= when given.
func (h *HolidayHandler) List(c *gin.Context) {
	var branchID *uint
	if c.Query("branch_id") != "" {
		id, ok := uintQuery(c, "branch_id")
		if !ok {
			return
		}
		branchID = &id
	}

	holidays, err := h.store.List(c.Request.Context(), branchID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, holidays)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if !deleted {
		httperr.NotFound(c, "holiday_not_found", "Holiday not found.")
		return
	}

	httpresp.NoContent(c)
}
