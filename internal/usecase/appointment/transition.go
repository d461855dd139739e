package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Scope limits a state change to appointments of one branch. BranchID 0 means any branch.
type Scope struct {
	BranchID uint
	ActorID  uint
}

type transition struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics

	action string
	apply  func(ap *models.Appointment, now time.Time) error
}

func (t *transition) run(
	ctx context.Context,
	scope Scope,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	if scope.BranchID != 0 && ap.BranchID != scope.BranchID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	branch, err := t.repo.FindBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	if err := t.apply(ap, now); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	actor := scope.ActorID
	t.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		UserID:   &actor,
		Action:   "appointment_" + t.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	t.metrics.ObserveAppointment(t.action)

	return ap, nil
}
