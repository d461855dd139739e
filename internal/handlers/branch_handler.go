package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type Catalog interface {
	FindBranchByID(ctx context.Context, id uint) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	ListStylists(ctx context.Context, branchID uint) ([]models.Stylist, error)
	ListServices(ctx context.Context, branchID uint) ([]models.Service, error)
	UpdateBranchSchedule(ctx context.Context, branchID uint, hours models.OperatingHours, minAdvanceMinutes int) (*models.Branch, error)
}

type BranchHandler struct {
	catalog Catalog
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewBranchHandler(catalog Catalog, audit *audit.Dispatcher, log *zap.Logger) *BranchHandler {
	return &BranchHandler{catalog: catalog, audit: audit, log: log}
}

// --------------------------------------------------
// Public catalogue
// --------------------------------------------------

func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.catalog.ListBranches(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, branches)
}

func (h *BranchHandler) ListStylists(c *gin.Context) {
	branch, ok := h.branch(c)
	if !ok {
		return
	}

	stylists, err := h.catalog.ListStylists(c.Request.Context(), branch.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, stylists)
}

func (h *BranchHandler) ListServices(c *gin.Context) {
	branch, ok := h.branch(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListServices(c.Request.Context(), branch.ID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

func (h *BranchHandler) branch(c *gin.Context) (*models.Branch, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}
	branch, err := h.catalog.FindBranchByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return nil, false
	}
	return branch, true
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

type UpdateScheduleRequest struct {
	WeekdayOpen   string `json:"weekday_open"`
	WeekdayClose  string `json:"weekday_close"`
	WeekendOpen   string `json:"weekend_open"`
	WeekendClose  string `json:"weekend_close"`
	HolidayOpen   string `json:"holiday_open"`
	HolidayClose  string `json:"holiday_close"`
	HolidayClosed bool   `json:"holiday_closed"`

	MinAdvanceMinutes int `json:"min_advance_minutes"`
}

func (h *BranchHandler) UpdateSchedule(c *gin.Context) {
	p, scope, ok := requireScope(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if scope != 0 && scope != id {
		httperr.Forbidden(c, "forbidden", "Cannot manage another branch.")
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	for name, pair := range map[string][2]string{
		"weekday": {req.WeekdayOpen, req.WeekdayClose},
		"weekend": {req.WeekendOpen, req.WeekendClose},
		"holiday": {req.HolidayOpen, req.HolidayClose},
	} {
		if err := validators.ValidOpeningHours(pair[0], pair[1]); err != nil {
			httperr.BadRequest(c, "invalid_"+name+"_hours", err.Error())
			return
		}
	}
	if req.MinAdvanceMinutes < 0 {
		httperr.BadRequest(c, "invalid_min_advance", "min_advance_minutes must be zero or positive.")
		return
	}

	branch, err := h.catalog.UpdateBranchSchedule(c.Request.Context(), id, models.OperatingHours{
		WeekdayOpen:   req.WeekdayOpen,
		WeekdayClose:  req.WeekdayClose,
		WeekendOpen:   req.WeekendOpen,
		WeekendClose:  req.WeekendClose,
		HolidayOpen:   req.HolidayOpen,
		HolidayClose:  req.HolidayClose,
		HolidayClosed: req.HolidayClosed,
	}, req.MinAdvanceMinutes)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		BranchID: branch.ID,
		UserID:   &p.UserID,
		Action:   "branch_schedule_updated",
		Entity:   "branch",
		EntityID: &branch.ID,
		Metadata: branch.Hours,
	})

	httpresp.OK(c, branch)
}
