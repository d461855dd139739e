package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// HolidayGormRepository is the database-backed holiday calendar.
type HolidayGormRepository struct {
	db *gorm.DB
}

func NewHolidayGormRepository(db *gorm.DB) *HolidayGormRepository {
	return &HolidayGormRepository{db: db}
}

var _ availability.HolidayCalendar = (*HolidayGormRepository)(nil)

// IsHoliday matches holidays of the branch and global ones, either on the exact
// date or, for recurring rows, on the same month and day of any year.
func (r *HolidayGormRepository) IsHoliday(
	ctx context.Context,
	branchID uint,
	date time.Time,
) (bool, error) {

	d := calendarDate(date)

	var rows []models.Holiday
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? OR branch_id IS NULL", branchID).
		Where("date = ? OR recurring_yearly = ?", d, true).
		Find(&rows).Error; err != nil {
		return false, err
	}

	day := time.Time(d)
	for _, h := range rows {
		hd := time.Time(h.Date)
		if hd.Year() == day.Year() && hd.Month() == day.Month() && hd.Day() == day.Day() {
			return true, nil
		}
		if h.RecurringYearly && hd.Month() == day.Month() && hd.Day() == day.Day() {
			return true, nil
		}
	}
	return false, nil
}

func (r *HolidayGormRepository) Create(ctx context.Context, h *models.Holiday) error {
	h.Date = calendarDate(time.Time(h.Date))
	return r.db.WithContext(ctx).Create(h).Error
}

// List returns holidays visible to branchID; nil lists every holiday.
func (r *HolidayGormRepository) List(ctx context.Context, branchID *uint) ([]models.Holiday, error) {
	q := r.db.WithContext(ctx).Order("date ASC")
	if branchID != nil {
		q = q.Where("branch_id = ? OR branch_id IS NULL", *branchID)
	}

	var rows []models.Holiday
	err := q.Find(&rows).Error
	return rows, err
}

// Delete reports false when no row matched.
func (r *HolidayGormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Holiday{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
