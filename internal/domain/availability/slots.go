package availability

import (
	"fmt"
	"time"
)

// Slot is a bookable [Start, End) of exactly the requested service duration.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

type SlotGenerator struct{}

// Generate subtracts busy from open and discretizes every free interval into
// slots of duration, stepping by granularity from the start of that interval.
func (SlotGenerator) Generate(
	open Interval,
	busy []Interval,
	duration time.Duration,
	granularity time.Duration,
) ([]Slot, error) {

	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %s", ErrInvalidParameter, duration)
	}
	if granularity <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive, got %s", ErrInvalidParameter, granularity)
	}

	slots := []Slot{}
	if open.IsEmpty() || duration > open.Duration() {
		return slots, nil
	}

	for _, free := range Subtract(open, busy) {
		for t := free.Start; !t.Add(duration).After(free.End); t = t.Add(granularity) {
			slots = append(slots, Slot{Start: t, End: t.Add(duration)})
		}
	}

	return slots, nil
}
