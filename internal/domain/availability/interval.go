package availability

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval and rejects End <= Start.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: interval end %s is not after start %s",
			ErrInvalidParameter, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// EmptyAt is the zero-length interval used for a day the branch is closed.
func EmptyAt(t time.Time) Interval {
	return Interval{Start: t, End: t}
}

func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

func (i Interval) Duration() time.Duration {
	if i.IsEmpty() {
		return 0
	}
	return i.End.Sub(i.Start)
}

func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Overlaps uses half-open semantics: touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Merge sorts the intervals by start and joins the ones that overlap or touch.
// Empty intervals are dropped. The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	sorted := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return []Interval{}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract returns the maximal sub-intervals of universe not covered by any busy
// interval, in chronological order. busy may be unsorted and overlapping.
func Subtract(universe Interval, busy []Interval) []Interval {
	if universe.IsEmpty() {
		return []Interval{}
	}

	free := []Interval{}
	cursor := universe.Start

	for _, b := range Merge(busy) {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(universe.End) {
			break
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		cursor = b.End
		if !cursor.Before(universe.End) {
			return free
		}
	}

	free = append(free, Interval{Start: cursor, End: universe.End})
	return free
}
