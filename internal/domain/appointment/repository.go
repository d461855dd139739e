package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository covers the write side of appointments.
type Repository interface {
	// -------- Branch / Stylist --------
	FindBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	FindStylistByID(
		ctx context.Context,
		id uint,
	) (*models.Stylist, error)

	// -------- Appointment (create / conflict) --------
	// CreateWithoutConflict locks the stylist's rows within Buffer of the
	// appointment and, when none is busy, resolves the customer and inserts
	// the appointment in the same transaction.
	CreateWithoutConflict(
		ctx context.Context,
		b Booking,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// CustomerDetails identifies the customer of a booking. UserID wins over
// Phone when matching an existing customer.
type CustomerDetails struct {
	UserID *uint
	Name   string
	Phone  string
	Email  string
}

type Booking struct {
	Appointment *models.Appointment
	Customer    CustomerDetails

	// Buffer is kept free before and after the appointment.
	Buffer time.Duration
}

var ErrNotFound = errors.New("appointment: not found")
