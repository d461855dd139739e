package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Read-only collaborators of the engine. Implementations return the
// package's not-found errors when a record is absent.

type StylistRepository interface {
	FindStylistByID(ctx context.Context, id uint) (*models.Stylist, error)
}

type ServiceRepository interface {
	FindServiceByID(ctx context.Context, id uint) (*models.Service, error)
}

type BranchRepository interface {
	FindBranchByID(ctx context.Context, id uint) (*models.Branch, error)
}

type AppointmentRepository interface {
	// FindAppointmentsByStylistAndDate returns appointments starting on the
	// calendar day beginning at dayStart, in any status.
	FindAppointmentsByStylistAndDate(
		ctx context.Context,
		stylistID uint,
		dayStart time.Time,
	) ([]models.Appointment, error)
}

type LeaveRequestRepository interface {
	// FindApprovedLeaveCoveringDate returns approved leave whose inclusive
	// [StartDate, EndDate] range contains date.
	FindApprovedLeaveCoveringDate(
		ctx context.Context,
		stylistID uint,
		date time.Time,
	) ([]models.LeaveRequest, error)
}
