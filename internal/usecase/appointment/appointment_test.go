package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	availabilityuc "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

type fakeRepo struct {
	branch       *models.Branch
	stylist      *models.Stylist
	appointments map[uint]*models.Appointment
	createErr    error
	created      []*models.Appointment
	bookings     []domain.Booking
	customers    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branch:       &models.Branch{ID: 10, Timezone: "UTC"},
		stylist:      &models.Stylist{ID: 1, BranchID: 10, Active: true},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) FindBranchByID(_ context.Context, id uint) (*models.Branch, error) {
	if id != f.branch.ID {
		return nil, availability.ErrBranchNotFound
	}
	return f.branch, nil
}

func (f *fakeRepo) FindStylistByID(_ context.Context, id uint) (*models.Stylist, error) {
	if id != f.stylist.ID {
		return nil, availability.ErrStylistNotFound
	}
	return f.stylist, nil
}

func (f *fakeRepo) CreateWithoutConflict(_ context.Context, b domain.Booking) error {
	f.bookings = append(f.bookings, b)
	if f.createErr != nil {
		return f.createErr
	}
	f.customers++
	ap := b.Appointment
	ap.CustomerID = 77
	ap.ID = uint(len(f.created) + 1)
	f.created = append(f.created, ap)
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := f.appointments[id]; ok {
		return ap, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, stylistID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StylistID == stylistID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

type fixedSlots struct {
	slots []availability.Slot
	in    availabilityuc.Input
}

func (f *fixedSlots) Execute(_ context.Context, in availabilityuc.Input) ([]availability.Slot, error) {
	f.in = in
	return f.slots, nil
}

func slotAt(h, m int) availability.Slot {
	s := time.Date(2026, 3, 11, h, m, 0, 0, time.UTC)
	return availability.Slot{Start: s, End: s.Add(30 * time.Minute)}
}

func TestCreateAppointment_BooksOfferedSlot(t *testing.T) {
	repo := newFakeRepo()
	finder := &fixedSlots{slots: []availability.Slot{slotAt(9, 0), slotAt(9, 15)}}
	uc := NewCreateAppointment(repo, finder, 0, nil, nil)

	userID := uint(3)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		StylistID:    1,
		ServiceID:    5,
		ActorID:      &userID,
		CustomerName: "Bea",
		Date:         "2026-03-11",
		Time:         "09:15",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, uint(77), ap.CustomerID)
	assert.Equal(t, slotAt(9, 15).Start, ap.StartTime)
	assert.Equal(t, slotAt(9, 15).End, ap.EndTime)
	assert.Equal(t, uint(5), finder.in.ServiceID)
	assert.Len(t, repo.created, 1)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, &userID, repo.bookings[0].Customer.UserID)
	assert.Equal(t, "Bea", repo.bookings[0].Customer.Name)
}

func TestCreateAppointment_PassesBufferToWrite(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &fixedSlots{slots: []availability.Slot{slotAt(9, 0)}}, 15*time.Minute, nil, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		StylistID: 1, ServiceID: 5, CustomerName: "Bea", Date: "2026-03-11", Time: "09:00",
	})
	require.NoError(t, err)

	require.Len(t, repo.bookings, 1)
	assert.Equal(t, 15*time.Minute, repo.bookings[0].Buffer)
}

func TestCreateAppointment_RejectsUnofferedStart(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateAppointment(repo, &fixedSlots{slots: []availability.Slot{slotAt(9, 0)}}, 0, nil, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		StylistID: 1, ServiceID: 5, CustomerName: "Bea", Date: "2026-03-11", Time: "09:10",
	})

	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.Zero(t, repo.customers)
	assert.Empty(t, repo.created)
}

func TestCreateAppointment_InvalidDate(t *testing.T) {
	uc := NewCreateAppointment(newFakeRepo(), &fixedSlots{}, 0, nil, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		StylistID: 1, ServiceID: 5, Date: "11/03/2026", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateAppointment_InactiveStylist(t *testing.T) {
	repo := newFakeRepo()
	repo.stylist.Active = false

	_, err := NewCreateAppointment(repo, &fixedSlots{}, 0, nil, nil).Execute(context.Background(), CreateAppointmentInput{
		StylistID: 1, ServiceID: 5, Date: "2026-03-11", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "stylist_inactive"))
}

func TestCreateAppointment_DatabaseConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = &pgconn.PgError{Code: "23P01"}
	uc := NewCreateAppointment(repo, &fixedSlots{slots: []availability.Slot{slotAt(9, 0)}}, 0, nil, nil)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		StylistID: 1, ServiceID: 5, CustomerName: "Bea", Date: "2026-03-11", Time: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.Zero(t, repo.customers)
}

func seed(repo *fakeRepo, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:        1,
		BranchID:  10,
		StylistID: 1,
		Status:    string(status),
		StartTime: slotAt(10, 0).Start,
		EndTime:   slotAt(10, 0).End,
	}
	repo.appointments[ap.ID] = ap
	return ap
}

func TestLifecycle_ConfirmThenComplete(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, domain.StatusPending)
	scope := Scope{BranchID: 10, ActorID: 2}

	ap, err := NewConfirmAppointment(repo, nil, nil).Execute(context.Background(), scope, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)

	ap, err = NewCompleteAppointment(repo, nil, nil).Execute(context.Background(), scope, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	_, err = NewCancelAppointment(repo, nil, nil).Execute(context.Background(), scope, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestLifecycle_CompletePendingIsInvalid(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, domain.StatusPending)

	_, err := NewCompleteAppointment(repo, nil, nil).Execute(context.Background(), Scope{ActorID: 2}, 1)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestLifecycle_Cancel(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, domain.StatusConfirmed)

	ap, err := NewCancelAppointment(repo, nil, nil).Execute(context.Background(), Scope{ActorID: 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

func TestLifecycle_OtherBranchIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, domain.StatusPending)

	_, err := NewConfirmAppointment(repo, nil, nil).Execute(context.Background(), Scope{BranchID: 11, ActorID: 2}, 1)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewConfirmAppointment(repo, nil, nil).Execute(context.Background(), Scope{ActorID: 2}, 99)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestListAppointmentsByDate(t *testing.T) {
	repo := newFakeRepo()
	seed(repo, domain.StatusPending)
	repo.appointments[2] = &models.Appointment{
		ID: 2, BranchID: 10, StylistID: 1,
		StartTime: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewListAppointmentsByDate(repo).Execute(context.Background(), 10, 1, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint(1), out[0].ID)

	_, err = NewListAppointmentsByDate(repo).Execute(context.Background(), 11, 1, time.Now())
	assert.True(t, httperr.IsBusiness(err, "stylist_not_found"))
}
