package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type holidaySet map[string]bool

func (h holidaySet) IsHoliday(_ context.Context, _ uint, date time.Time) (bool, error) {
	return h[date.Format("2006-01-02")], nil
}

type failingCalendar struct{}

func (failingCalendar) IsHoliday(context.Context, uint, time.Time) (bool, error) {
	return false, errors.New("calendar offline")
}

func salonBranch() *models.Branch {
	return &models.Branch{
		ID: 7,
		Hours: models.OperatingHours{
			WeekdayOpen:  "09:00",
			WeekdayClose: "18:00",
			WeekendOpen:  "10:00",
			WeekendClose: "14:00",
			HolidayOpen:  "11:00",
			HolidayClose: "13:00",
		},
	}
}

var (
	tuesday  = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func TestCategorize_Precedence(t *testing.T) {
	r := NewOperatingHoursResolver(holidaySet{"2026-03-14": true})
	ctx := context.Background()

	c, err := r.Categorize(ctx, 1, tuesday)
	require.NoError(t, err)
	assert.Equal(t, CategoryWeekday, c)

	c, err = r.Categorize(ctx, 1, sunday)
	require.NoError(t, err)
	assert.Equal(t, CategoryWeekend, c)

	c, err = r.Categorize(ctx, 1, saturday)
	require.NoError(t, err)
	assert.Equal(t, CategoryHoliday, c, "holiday wins over weekend")
}

func TestCategorize_NilCalendar(t *testing.T) {
	c, err := NewOperatingHoursResolver(nil).Categorize(context.Background(), 1, saturday)
	require.NoError(t, err)
	assert.Equal(t, CategoryWeekend, c)
}

func TestCategorize_CalendarError(t *testing.T) {
	_, err := NewOperatingHoursResolver(failingCalendar{}).Categorize(context.Background(), 1, tuesday)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSchedule)
}

func TestResolve_Templates(t *testing.T) {
	r := NewOperatingHoursResolver(holidaySet{"2026-03-11": true})
	branch := salonBranch()
	ctx := context.Background()

	open, err := r.Resolve(ctx, branch, tuesday)
	require.NoError(t, err)
	assert.Equal(t, tuesday.Add(9*time.Hour), open.Start)
	assert.Equal(t, tuesday.Add(18*time.Hour), open.End)

	open, err = r.Resolve(ctx, branch, saturday)
	require.NoError(t, err)
	assert.Equal(t, saturday.Add(10*time.Hour), open.Start)
	assert.Equal(t, saturday.Add(14*time.Hour), open.End)

	wednesday := tuesday.AddDate(0, 0, 1)
	open, err = r.Resolve(ctx, branch, wednesday)
	require.NoError(t, err)
	assert.Equal(t, wednesday.Add(11*time.Hour), open.Start)
	assert.Equal(t, wednesday.Add(13*time.Hour), open.End)
}

func TestResolve_UsesDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	open, err := NewOperatingHoursResolver(nil).Resolve(context.Background(), salonBranch(), date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, loc), open.Start)
	assert.Equal(t, 12, open.Start.UTC().Hour())
}

func TestResolve_ClosedCategory(t *testing.T) {
	branch := salonBranch()
	branch.Hours.WeekendOpen = ""
	branch.Hours.WeekendClose = ""

	open, err := NewOperatingHoursResolver(nil).Resolve(context.Background(), branch, sunday)
	require.NoError(t, err)
	assert.True(t, open.IsEmpty())
	assert.Equal(t, sunday, open.Start)
}

func TestResolve_HolidayClosed(t *testing.T) {
	branch := salonBranch()
	branch.Hours.HolidayClosed = true

	open, err := NewOperatingHoursResolver(holidaySet{"2026-03-10": true}).
		Resolve(context.Background(), branch, tuesday)
	require.NoError(t, err)
	assert.True(t, open.IsEmpty())
}

// Scenario D
func TestResolve_ClosingNotAfterOpening(t *testing.T) {
	branch := salonBranch()
	branch.Hours.WeekdayOpen = "18:00"
	branch.Hours.WeekdayClose = "09:00"

	_, err := NewOperatingHoursResolver(nil).Resolve(context.Background(), branch, tuesday)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, uint(7), schedErr.BranchID)
	assert.Equal(t, CategoryWeekday, schedErr.Category)

	branch.Hours.WeekdayClose = "18:00"
	_, err = NewOperatingHoursResolver(nil).Resolve(context.Background(), branch, tuesday)
	assert.ErrorIs(t, err, ErrInvalidSchedule, "equal times")
}

func TestResolve_MalformedTemplate(t *testing.T) {
	cases := map[string][2]string{
		"missing close": {"09:00", ""},
		"missing open":  {"", "18:00"},
		"garbage":       {"nine", "18:00"},
		"out of range":  {"09:00", "25:00"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			branch := salonBranch()
			branch.Hours.WeekdayOpen = tc[0]
			branch.Hours.WeekdayClose = tc[1]

			_, err := NewOperatingHoursResolver(nil).Resolve(context.Background(), branch, tuesday)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour+30*time.Minute, d)

	_, err = ParseTimeOfDay("8h30")
	assert.Error(t, err)
}
