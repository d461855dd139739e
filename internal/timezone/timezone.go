package timezone

import (
	"sync"
	"time"
)

const FallbackTimezone = "UTC"

var (
	mu              sync.RWMutex
	defaultTimezone = FallbackTimezone
)

// SetDefault changes the zone used for branches without a valid timezone.
// Invalid names are ignored.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	defaultTimezone = tz
	mu.Unlock()
}

func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultTimezone
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(Default())
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DateIn returns midnight of date's calendar day (year, month, day) in tz.
func DateIn(date time.Time, tz string) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, Location(tz))
}
