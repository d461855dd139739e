package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const DefaultGranularity = 15 * time.Minute

// ======================================================
// DEPENDENCIES
// ======================================================

type Repositories struct {
	Stylists     domain.StylistRepository
	Services     domain.ServiceRepository
	Branches     domain.BranchRepository
	Appointments domain.AppointmentRepository
	Leave        domain.LeaveRequestRepository
	Holidays     domain.HolidayCalendar
}

type Options struct {
	Granularity time.Duration
	Buffer      time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// ======================================================
// INPUT
// ======================================================

type Input struct {
	StylistID uint
	ServiceID uint

	// Only the calendar day is used; it is read in the branch timezone.
	Date time.Time
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	stylists domain.StylistRepository
	services domain.ServiceRepository
	branches domain.BranchRepository

	resolver  *domain.OperatingHoursResolver
	busy      *domain.BusyTimeAggregator
	generator domain.SlotGenerator

	granularity time.Duration
	now         func() time.Time

	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewGetAvailability(
	repos Repositories,
	opts Options,
	log *zap.Logger,
	m *metrics.Metrics,
) *GetAvailability {
	if opts.Granularity <= 0 {
		opts.Granularity = DefaultGranularity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &GetAvailability{
		stylists:    repos.Stylists,
		services:    repos.Services,
		branches:    repos.Branches,
		resolver:    domain.NewOperatingHoursResolver(repos.Holidays),
		busy:        domain.NewBusyTimeAggregator(repos.Appointments, repos.Leave, repos.Services, opts.Buffer),
		granularity: opts.Granularity,
		now:         opts.Now,
		log:         log,
		metrics:     m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in Input,
) (slots []domain.Slot, err error) {

	defer func() {
		uc.observe(in, slots, err)
	}()

	if in.StylistID == 0 || in.ServiceID == 0 {
		return nil, fmt.Errorf("%w: stylist and service ids are required", domain.ErrInvalidParameter)
	}

	// --------------------------------------------------
	// 1. Stylist, then branch and service together
	// --------------------------------------------------
	stylist, err := uc.stylists.FindStylistByID(ctx, in.StylistID)
	if err != nil {
		return nil, fmt.Errorf("load stylist %d: %w", in.StylistID, err)
	}
	if !stylist.Active {
		return nil, fmt.Errorf("stylist %d is inactive: %w", stylist.ID, domain.ErrStylistNotFound)
	}

	var (
		branch  *models.Branch
		service *models.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.branches.FindBranchByID(gctx, stylist.BranchID)
		if err != nil {
			return fmt.Errorf("load branch %d: %w", stylist.BranchID, err)
		}
		branch = b
		return nil
	})
	g.Go(func() error {
		s, err := uc.services.FindServiceByID(gctx, in.ServiceID)
		if err != nil {
			return fmt.Errorf("load service %d: %w", in.ServiceID, err)
		}
		service = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if service.BranchID != stylist.BranchID || !service.Active {
		return nil, fmt.Errorf("service %d at branch %d: %w",
			service.ID, stylist.BranchID, domain.ErrServiceNotFound)
	}

	// --------------------------------------------------
	// 2. Past dates never have slots
	// --------------------------------------------------
	day := timezone.DateIn(in.Date, branch.Timezone)
	now := uc.now().In(day.Location())
	today := domain.StartOfDay(now)

	if day.Before(today) {
		return []domain.Slot{}, nil
	}

	// --------------------------------------------------
	// 3. Opening hours
	// --------------------------------------------------
	open, err := uc.resolver.Resolve(ctx, branch, day)
	if err != nil {
		return nil, err
	}
	if open.IsEmpty() {
		return []domain.Slot{}, nil
	}

	// --------------------------------------------------
	// 4. Busy windows + slots
	// --------------------------------------------------
	busy, err := uc.busy.BusyWindowsFor(ctx, stylist.ID, open)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	slots, err = uc.generator.Generate(open, busy, duration, uc.granularity)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Minimum notice for today
	// --------------------------------------------------
	if day.Equal(today) {
		cutoff := now.Add(time.Duration(branch.MinAdvanceMinutes) * time.Minute)
		slots = startingFrom(slots, cutoff)
	}

	return slots, nil
}

func startingFrom(slots []domain.Slot, cutoff time.Time) []domain.Slot {
	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start.Before(cutoff) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (uc *GetAvailability) observe(in Input, slots []domain.Slot, err error) {
	fields := []zap.Field{
		zap.Uint("stylist_id", in.StylistID),
		zap.Uint("service_id", in.ServiceID),
		zap.String("date", in.Date.Format("2006-01-02")),
	}

	var schedErr *domain.ScheduleError

	switch {
	case err == nil && len(slots) == 0:
		uc.metrics.ObserveAvailability(metrics.OutcomeEmpty)
	case err == nil:
		uc.metrics.ObserveAvailability(metrics.OutcomeOK)
	case errors.As(err, &schedErr):
		uc.metrics.ObserveAvailability(metrics.OutcomeInvalidSchedule)
		uc.log.Error("availability: branch schedule is misconfigured",
			append(fields,
				zap.Uint("branch_id", schedErr.BranchID),
				zap.String("category", string(schedErr.Category)),
				zap.Error(err),
			)...,
		)
	case domain.IsNotFound(err):
		uc.metrics.ObserveAvailability(metrics.OutcomeNotFound)
		uc.log.Warn("availability: not found", append(fields, zap.Error(err))...)
	case errors.Is(err, domain.ErrInvalidParameter):
		uc.metrics.ObserveAvailability(metrics.OutcomeInvalidParam)
		uc.log.Warn("availability: invalid parameter", append(fields, zap.Error(err))...)
	default:
		uc.metrics.ObserveAvailability(metrics.OutcomeError)
		uc.log.Error("availability: query failed", append(fields, zap.Error(err))...)
	}
}
