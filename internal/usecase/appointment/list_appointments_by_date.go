package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists a stylist's appointments on the calendar day of date in the
// branch timezone. A non-zero branchID restricts the stylist to that branch.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	branchID uint,
	stylistID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	stylist, err := uc.repo.FindStylistByID(ctx, stylistID)
	if err != nil {
		return nil, err
	}
	if branchID != 0 && stylist.BranchID != branchID {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}

	branch, err := uc.repo.FindBranchByID(ctx, stylist.BranchID)
	if err != nil {
		return nil, err
	}

	start := timezone.DateIn(date, branch.Timezone)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		stylist.ID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			StylistID:    ap.StylistID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			ServiceName:  ap.Service.Name,
		})
	}

	return out, nil
}
