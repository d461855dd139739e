package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/leave"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type LeaveGormRepository struct {
	*CatalogGormRepository
	db *gorm.DB
}

func NewLeaveGormRepository(db *gorm.DB) *LeaveGormRepository {
	return &LeaveGormRepository{
		CatalogGormRepository: NewCatalogGormRepository(db),
		db:                    db,
	}
}

var (
	_ domain.Repository                   = (*LeaveGormRepository)(nil)
	_ availability.LeaveRequestRepository = (*LeaveGormRepository)(nil)
)

func (r *LeaveGormRepository) FindApprovedLeaveCoveringDate(
	ctx context.Context,
	stylistID uint,
	date time.Time,
) ([]models.LeaveRequest, error) {

	d := calendarDate(date)

	var leaves []models.LeaveRequest
	err := r.db.WithContext(ctx).
		Where(
			"stylist_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			stylistID,
			string(domain.StatusApproved),
			d,
			d,
		).
		Find(&leaves).Error
	return leaves, err
}

func (r *LeaveGormRepository) CreateLeaveRequest(
	ctx context.Context,
	lr *models.LeaveRequest,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lr).Error
}

func (r *LeaveGormRepository) GetLeaveRequest(
	ctx context.Context,
	id uint,
) (*models.LeaveRequest, error) {

	var lr models.LeaveRequest
	if err := r.db.WithContext(ctx).First(&lr, id).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &lr, nil
}

func (r *LeaveGormRepository) UpdateLeaveRequest(
	ctx context.Context,
	lr *models.LeaveRequest,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(lr).Error
}

// calendarDate maps the calendar day of t to the UTC midnight stored in date columns.
func calendarDate(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}
