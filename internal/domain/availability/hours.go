package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const TimeOfDayLayout = "15:04"

type DayCategory string

const (
	CategoryWeekday DayCategory = "weekday"
	CategoryWeekend DayCategory = "weekend"
	CategoryHoliday DayCategory = "holiday"
)

// DayTemplate is an opening/closing pair expressed as time of day.
type DayTemplate struct {
	Opening string
	Closing string
	Closed  bool
}

type OperatingSchedule struct {
	Weekday DayTemplate
	Weekend DayTemplate
	Holiday DayTemplate
}

// ScheduleFromBranch reads the persisted templates of a branch.
func ScheduleFromBranch(b *models.Branch) OperatingSchedule {
	h := b.Hours
	return OperatingSchedule{
		Weekday: template(h.WeekdayOpen, h.WeekdayClose, false),
		Weekend: template(h.WeekendOpen, h.WeekendClose, false),
		Holiday: template(h.HolidayOpen, h.HolidayClose, h.HolidayClosed),
	}
}

func template(open, close string, closed bool) DayTemplate {
	open = strings.TrimSpace(open)
	close = strings.TrimSpace(close)
	return DayTemplate{
		Opening: open,
		Closing: close,
		Closed:  closed || (open == "" && close == ""),
	}
}

func (s OperatingSchedule) For(c DayCategory) DayTemplate {
	switch c {
	case CategoryHoliday:
		return s.Holiday
	case CategoryWeekend:
		return s.Weekend
	default:
		return s.Weekday
	}
}

// HolidayCalendar answers whether a calendar date is a public holiday for a branch.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, branchID uint, date time.Time) (bool, error)
}

type OperatingHoursResolver struct {
	holidays HolidayCalendar
}

func NewOperatingHoursResolver(holidays HolidayCalendar) *OperatingHoursResolver {
	return &OperatingHoursResolver{holidays: holidays}
}

// Categorize applies holiday > weekend > weekday precedence.
func (r *OperatingHoursResolver) Categorize(
	ctx context.Context,
	branchID uint,
	date time.Time,
) (DayCategory, error) {

	if r.holidays != nil {
		holiday, err := r.holidays.IsHoliday(ctx, branchID, date)
		if err != nil {
			return "", fmt.Errorf("availability: holiday lookup: %w", err)
		}
		if holiday {
			return CategoryHoliday, nil
		}
	}

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return CategoryWeekend, nil
	default:
		return CategoryWeekday, nil
	}
}

// Resolve returns the absolute open interval of branch on date, interpreted
// in date's location. A closed day yields an empty interval.
func (r *OperatingHoursResolver) Resolve(
	ctx context.Context,
	branch *models.Branch,
	date time.Time,
) (Interval, error) {

	category, err := r.Categorize(ctx, branch.ID, date)
	if err != nil {
		return Interval{}, err
	}

	tpl := ScheduleFromBranch(branch).For(category)
	dayStart := StartOfDay(date)

	if tpl.Closed {
		return EmptyAt(dayStart), nil
	}

	opening, closing, err := tpl.offsets()
	if err != nil {
		return Interval{}, &ScheduleError{
			BranchID: branch.ID,
			Category: category,
			Opening:  tpl.Opening,
			Closing:  tpl.Closing,
			Reason:   err.Error(),
		}
	}
	if closing <= opening {
		return Interval{}, &ScheduleError{
			BranchID: branch.ID,
			Category: category,
			Opening:  tpl.Opening,
			Closing:  tpl.Closing,
			Reason:   "closing time is not after opening time",
		}
	}

	return Interval{
		Start: atOffset(dayStart, opening),
		End:   atOffset(dayStart, closing),
	}, nil
}

func (t DayTemplate) offsets() (time.Duration, time.Duration, error) {
	opening, err := ParseTimeOfDay(t.Opening)
	if err != nil {
		return 0, 0, fmt.Errorf("opening: %w", err)
	}
	closing, err := ParseTimeOfDay(t.Closing)
	if err != nil {
		return 0, 0, fmt.Errorf("closing: %w", err)
	}
	return opening, closing, nil
}

// ParseTimeOfDay parses "HH:MM" into an offset from midnight.
func ParseTimeOfDay(hm string) (time.Duration, error) {
	t, err := time.Parse(TimeOfDayLayout, strings.TrimSpace(hm))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", hm)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// StartOfDay is midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// atOffset rebuilds wall-clock time so DST transitions keep the configured hours.
func atOffset(dayStart time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), h, m, 0, 0, dayStart.Location())
}
