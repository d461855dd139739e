package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CompleteAppointment struct {
	t transition
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *CompleteAppointment {
	return &CompleteAppointment{
		t: transition{
			repo:    repo,
			audit:   audit,
			metrics: m,
			action:  "completed",
			apply:   domain.Complete,
		},
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	scope Scope,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.t.run(ctx, scope, appointmentID)
}
