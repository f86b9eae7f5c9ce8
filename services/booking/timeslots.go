package booking

import (
	"fmt"
	"time"
)

// The nine bookable slots, hour-aligned from 9:00 AM through 5:00 PM.
var timeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// TimeSlots returns the selectable slots.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// ValidTimeSlot reports whether slot is one of the fixed offerings.
func ValidTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ConvertTo24Hour turns a 12-hour slot label into an HH:MM:SS fragment,
// e.g. "9:00 AM" -> "09:00:00", "12:00 PM" -> "12:00:00".
func ConvertTo24Hour(slot string) (string, error) {
	parsed, err := time.Parse("3:04 PM", slot)
	if err != nil {
		return "", fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	return parsed.Format("15:04:05"), nil
}
