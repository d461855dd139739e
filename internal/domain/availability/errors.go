package availability

import (
	"errors"
	"fmt"
)

var (
	ErrStylistNotFound = errors.New("availability: stylist not found")
	ErrServiceNotFound = errors.New("availability: service not found")
	ErrBranchNotFound  = errors.New("availability: branch not found")

	// ErrInvalidParameter is returned for malformed durations, granularity or ids.
	ErrInvalidParameter = errors.New("availability: invalid parameter")

	// ErrInvalidSchedule marks persisted branch hours that cannot produce a valid day.
	ErrInvalidSchedule = errors.New("availability: invalid branch schedule")
)

// ScheduleError describes a misconfigured operating-hours template.
type ScheduleError struct {
	BranchID uint
	Category DayCategory
	Opening  string
	Closing  string
	Reason   string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("availability: invalid %s schedule for branch %d (open=%q close=%q): %s",
		e.Category, e.BranchID, e.Opening, e.Closing, e.Reason)
}

func (e *ScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

// IsNotFound reports whether err is one of the caller-input not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStylistNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrBranchNotFound)
}
