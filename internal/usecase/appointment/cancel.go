package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	t transition
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CancelAppointment {
	return &CancelAppointment{
		t: transition{
			repo:    repo,
			audit:   audit,
			metrics: m,
			action:  "cancelled",
			apply:   domain.Cancel,
		},
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	scope Scope,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.t.run(ctx, scope, appointmentID)
}
