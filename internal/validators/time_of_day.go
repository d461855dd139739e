package validators

import (
	"fmt"
	"time"
)

// ValidOpeningHours accepts an HH:MM pair with closing after opening, or
// both empty for a closed day.
func ValidOpeningHours(open, close string) error {
	if open == "" && close == "" {
		return nil
	}
	if open == "" || close == "" {
		return fmt.Errorf("both opening and closing are required")
	}

	o, err := time.Parse("15:04", open)
	if err != nil {
		return fmt.Errorf("invalid opening time %q", open)
	}
	c, err := time.Parse("15:04", close)
	if err != nil {
		return fmt.Errorf("invalid closing time %q", close)
	}
	if !c.After(o) {
		return fmt.Errorf("closing %s must be after opening %s", close, open)
	}
	return nil
}
