package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/leave"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// BusyTimeAggregator collects the windows in which a stylist cannot take a booking.
type BusyTimeAggregator struct {
	appointments AppointmentRepository
	leave        LeaveRequestRepository
	services     ServiceRepository
	buffer       time.Duration
}

func NewBusyTimeAggregator(
	appointments AppointmentRepository,
	leave LeaveRequestRepository,
	services ServiceRepository,
	buffer time.Duration,
) *BusyTimeAggregator {
	if buffer < 0 {
		buffer = 0
	}
	return &BusyTimeAggregator{
		appointments: appointments,
		leave:        leave,
		services:     services,
		buffer:       buffer,
	}
}

// BusyWindowsFor returns the unmerged busy windows of stylistID on the day that
// open belongs to. Appointment and leave lookups run concurrently.
func (a *BusyTimeAggregator) BusyWindowsFor(
	ctx context.Context,
	stylistID uint,
	open Interval,
) ([]Interval, error) {

	dayStart := StartOfDay(open.Start)

	var (
		apps   []models.Appointment
		leaves []models.LeaveRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apps, err = a.appointments.FindAppointmentsByStylistAndDate(gctx, stylistID, dayStart)
		if err != nil {
			return fmt.Errorf("availability: load appointments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		leaves, err = a.leave.FindApprovedLeaveCoveringDate(gctx, stylistID, dayStart)
		if err != nil {
			return fmt.Errorf("availability: load leave: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	busy := make([]Interval, 0, len(apps)+len(leaves))

	windows, err := a.appointmentWindows(ctx, apps)
	if err != nil {
		return nil, err
	}
	busy = append(busy, windows...)

	// leave blocks the whole business day
	if !open.IsEmpty() {
		for _, lr := range leaves {
			if leave.Status(lr.Status).Blocks() {
				busy = append(busy, open)
				break
			}
		}
	}

	return busy, nil
}

func (a *BusyTimeAggregator) appointmentWindows(
	ctx context.Context,
	apps []models.Appointment,
) ([]Interval, error) {

	durations := map[uint]time.Duration{}
	missing := map[uint]bool{}
	out := make([]Interval, 0, len(apps))

	for _, ap := range apps {
		if !appointment.Status(ap.Status).IsBusy() {
			continue
		}

		d, ok := durations[ap.ServiceID]
		if !ok && !missing[ap.ServiceID] {
			svc, err := a.services.FindServiceByID(ctx, ap.ServiceID)
			switch {
			case err == nil:
				d = time.Duration(svc.DurationMin) * time.Minute
				durations[ap.ServiceID] = d
			case errors.Is(err, ErrServiceNotFound):
				missing[ap.ServiceID] = true
			default:
				return nil, fmt.Errorf("availability: load service %d: %w", ap.ServiceID, err)
			}
		}
		if missing[ap.ServiceID] {
			// service removed from the catalogue: fall back on the stored end
			d = ap.EndTime.Sub(ap.StartTime)
		}
		if d <= 0 {
			continue
		}

		// the buffer is kept free on both sides
		out = append(out, Interval{
			Start: ap.StartTime.Add(-a.buffer),
			End:   ap.StartTime.Add(d + a.buffer),
		})
	}

	return out, nil
}
