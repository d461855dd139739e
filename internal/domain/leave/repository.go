package leave

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	FindStylistByID(ctx context.Context, id uint) (*models.Stylist, error)
	CreateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
	GetLeaveRequest(ctx context.Context, id uint) (*models.LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, lr *models.LeaveRequest) error
}

var ErrNotFound = errors.New("leave: request not found")
