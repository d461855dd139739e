package leave

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Only approved leave blocks a stylist's calendar.
func (s Status) Blocks() bool {
	return s == StatusApproved
}

func CanDecide(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func Approve(lr *models.LeaveRequest, deciderID uint, now time.Time) error {
	return decide(lr, StatusApproved, deciderID, now)
}

func Reject(lr *models.LeaveRequest, deciderID uint, now time.Time) error {
	return decide(lr, StatusRejected, deciderID, now)
}

func decide(lr *models.LeaveRequest, to Status, deciderID uint, now time.Time) error {
	if err := CanDecide(Status(lr.Status)); err != nil {
		return err
	}
	lr.Status = string(to)
	lr.DecidedBy = &deciderID
	lr.DecidedAt = &now
	return nil
}
