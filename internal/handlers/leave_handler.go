package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/leave"
)

type LeaveHandler struct {
	request *leave.RequestLeave
	decide  *leave.DecideLeave
	log     *zap.Logger
}

func NewLeaveHandler(request *leave.RequestLeave, decide *leave.DecideLeave, log *zap.Logger) *LeaveHandler {
	return &LeaveHandler{request: request, decide: decide, log: log}
}

type CreateLeaveRequest struct {
	StylistID uint   `json:"stylist_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *LeaveHandler) Create(c *gin.Context) {
	p, scope, ok := requireScope(c)
	if !ok {
		return
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	lr, err := h.request.Execute(c.Request.Context(), leave.RequestLeaveInput{
		StylistID: req.StylistID,
		ActorID:   p.UserID,
		ActorRole: p.Role,
		BranchID:  scope,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, lr)
}

func (h *LeaveHandler) Approve(c *gin.Context) {
	h.decideWith(c, h.decide.Approve)
}

func (h *LeaveHandler) Reject(c *gin.Context) {
	h.decideWith(c, h.decide.Reject)
}

func (h *LeaveHandler) decideWith(
	c *gin.Context,
	fn func(ctx context.Context, branchID, deciderID, leaveID uint) (*models.LeaveRequest, error),
) {
	p, scope, ok := requireScope(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	lr, err := fn(c.Request.Context(), scope, p.UserID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, lr)
}
