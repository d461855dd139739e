package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ConfirmAppointment struct {
	t transition
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		t: transition{
			repo:    repo,
			audit:   audit,
			metrics: m,
			action:  "confirmed",
			apply:   domain.Confirm,
		},
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	scope Scope,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.t.run(ctx, scope, appointmentID)
}
