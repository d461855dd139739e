package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	availabilityuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

// SlotFinder is the availability query a booking is checked against.
type SlotFinder interface {
	Execute(ctx context.Context, in availabilityuc.Input) ([]availability.Slot, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	StylistID uint
	ServiceID uint

	// ActorID is the customer booking for themselves; nil for walk-ins entered by staff.
	ActorID *uint

	// BranchID restricts staff to stylists of their branch; 0 allows any.
	BranchID uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	slots   SlotFinder
	buffer  time.Duration
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
}

// NewCreateAppointment keeps buffer free around each new booking at write
// time; it must match the buffer the slot finder was built with.
func NewCreateAppointment(
	repo domain.Repository,
	slots SlotFinder,
	buffer time.Duration,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		slots:   slots,
		buffer:  buffer,
		audit:   audit,
		metrics: m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Stylist and branch
	// --------------------------------------------------
	stylist, err := uc.repo.FindStylistByID(ctx, in.StylistID)
	if err != nil {
		return nil, err
	}
	if in.BranchID != 0 && stylist.BranchID != in.BranchID {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}
	if !stylist.Active {
		return nil, httperr.ErrBusiness("stylist_inactive")
	}

	branch, err := uc.repo.FindBranchByID(ctx, stylist.BranchID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Date / time in the branch timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(branch.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Requested start must be an offered slot
	// --------------------------------------------------
	slots, err := uc.slots.Execute(ctx, availabilityuc.Input{
		StylistID: stylist.ID,
		ServiceID: in.ServiceID,
		Date:      start,
	})
	if err != nil {
		return nil, err
	}

	slot, ok := findSlot(slots, start)
	if !ok {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// 4. Insert with the customer, guarded against concurrent bookings
	// --------------------------------------------------
	ap := &models.Appointment{
		BranchID:  branch.ID,
		StylistID: stylist.ID,
		ServiceID: in.ServiceID,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	err = uc.repo.CreateWithoutConflict(ctx, domain.Booking{
		Appointment: ap,
		Customer: domain.CustomerDetails{
			UserID: in.ActorID,
			Name:   in.CustomerName,
			Phone:  in.CustomerPhone,
			Email:  in.CustomerEmail,
		},
		Buffer: uc.buffer,
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BranchID: branch.ID,
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"stylist_id": stylist.ID,
			"start":      ap.StartTime.Format(time.RFC3339),
		},
	})
	uc.metrics.ObserveAppointment("created")

	return ap, nil
}

func findSlot(slots []availability.Slot, start time.Time) (availability.Slot, bool) {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return availability.Slot{}, false
}
