package leave

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/leave"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const dateLayout = "2006-01-02"

type RequestLeaveInput struct {
	StylistID uint
	ActorID   uint

	// ActorRole stylist may only file leave for their own stylist profile.
	ActorRole auth.Role

	// BranchID scopes the stylist; 0 allows any branch.
	BranchID uint

	StartDate string
	EndDate   string
	Reason    string
}

type RequestLeave struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRequestLeave(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RequestLeave {
	return &RequestLeave{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RequestLeave) Execute(
	ctx context.Context,
	in RequestLeaveInput,
) (*models.LeaveRequest, error) {

	stylist, err := uc.repo.FindStylistByID(ctx, in.StylistID)
	if err != nil {
		return nil, err
	}
	if in.BranchID != 0 && stylist.BranchID != in.BranchID {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}
	if in.ActorRole == auth.RoleStylist && (stylist.UserID == nil || *stylist.UserID != in.ActorID) {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	lr := &models.LeaveRequest{
		StylistID: stylist.ID,
		StartDate: datatypes.Date(start),
		EndDate:   datatypes.Date(end),
		Reason:    in.Reason,
		Status:    string(domain.StatusPending),
	}

	if err := uc.repo.CreateLeaveRequest(ctx, lr); err != nil {
		return nil, err
	}

	actor := in.ActorID
	uc.audit.Dispatch(audit.Event{
		BranchID: stylist.BranchID,
		UserID:   &actor,
		Action:   "leave_requested",
		Entity:   "leave_request",
		EntityID: &lr.ID,
	})

	return lr, nil
}

// parseDate keeps leave dates at UTC midnight so date-only columns compare consistently.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return t, nil
}
