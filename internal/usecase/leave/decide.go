package leave

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/leave"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DecideLeave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewDecideLeave(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DecideLeave {
	return &DecideLeave{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *DecideLeave) Approve(ctx context.Context, branchID, deciderID, leaveID uint) (*models.LeaveRequest, error) {
	return uc.decide(ctx, branchID, deciderID, leaveID, "leave_approved", domain.Approve)
}

func (uc *DecideLeave) Reject(ctx context.Context, branchID, deciderID, leaveID uint) (*models.LeaveRequest, error) {
	return uc.decide(ctx, branchID, deciderID, leaveID, "leave_rejected", domain.Reject)
}

func (uc *DecideLeave) decide(
	ctx context.Context,
	branchID uint,
	deciderID uint,
	leaveID uint,
	action string,
	apply func(*models.LeaveRequest, uint, time.Time) error,
) (*models.LeaveRequest, error) {

	lr, err := uc.repo.GetLeaveRequest(ctx, leaveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("leave_not_found")
		}
		return nil, err
	}

	stylist, err := uc.repo.FindStylistByID(ctx, lr.StylistID)
	if err != nil {
		return nil, err
	}
	if branchID != 0 && stylist.BranchID != branchID {
		return nil, httperr.ErrBusiness("leave_not_found")
	}

	if err := apply(lr, deciderID, uc.now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateLeaveRequest(ctx, lr); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: stylist.BranchID,
		UserID:   &deciderID,
		Action:   action,
		Entity:   "leave_request",
		EntityID: &lr.ID,
	})

	return lr, nil
}
