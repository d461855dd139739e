package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	*CatalogGormRepository
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{
		CatalogGormRepository: NewCatalogGormRepository(db),
		db:                    db,
	}
}

var (
	_ domain.Repository                  = (*AppointmentGormRepository)(nil)
	_ availability.AppointmentRepository = (*AppointmentGormRepository)(nil)
)

// --------------------------------------------------
// Customer
// --------------------------------------------------

func getOrCreateCustomer(
	tx *gorm.DB,
	branchID uint,
	d domain.CustomerDetails,
) (*models.Customer, error) {

	var customer models.Customer
	q := tx.Where("branch_id = ?", branchID)

	switch {
	case d.UserID != nil:
		q = q.Where("user_id = ?", *d.UserID)
	case d.Phone != "":
		q = q.Where("phone = ?", d.Phone)
	default:
		q = nil
	}

	if q != nil {
		err := q.First(&customer).Error
		if err == nil {
			return &customer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	customer = models.Customer{
		BranchID: branchID,
		UserID:   d.UserID,
		Name:     d.Name,
		Phone:    d.Phone,
		Email:    d.Email,
	}
	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateWithoutConflict(
	ctx context.Context,
	b domain.Booking,
) error {

	ap := b.Appointment
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	buffer := b.Buffer
	if buffer < 0 {
		buffer = 0
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializes bookings of one stylist; the exclusion constraint
		// alone cannot see the buffer
		var stylist models.Stylist
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&stylist, ap.StylistID).Error; err != nil {
			return notFound(err, availability.ErrStylistNotFound)
		}

		var ids []uint
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"stylist_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.StylistID,
				string(domain.StatusCancelled),
				ap.EndTime.Add(buffer),
				ap.StartTime.Add(-buffer),
			).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		customer, err := getOrCreateCustomer(tx, ap.BranchID, b.Customer)
		if err != nil {
			return err
		}
		ap.CustomerID = customer.ID

		return tx.Omit(clause.Associations).Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listing / availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("stylist_id = ? AND start_time >= ? AND start_time < ?", stylistID, start.UTC(), end.UTC()).
		Order("start_time ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentGormRepository) FindAppointmentsByStylistAndDate(
	ctx context.Context,
	stylistID uint,
	dayStart time.Time,
) ([]models.Appointment, error) {

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"stylist_id = ? AND start_time >= ? AND start_time < ?",
			stylistID,
			dayStart.UTC(),
			dayStart.AddDate(0, 0, 1).UTC(),
		).
		Order("start_time ASC").
		Find(&appointments).Error
	return appointments, err
}
