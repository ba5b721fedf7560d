package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SlotMinutes is the width of a bookable slot.
const SlotMinutes = 30

var ErrBadClock = errors.New("invalid HH:MM time")

// ParseClock converts a 24-hour "HH:MM" wall-clock string to minutes
// since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}

	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// Slots partitions [open, close) into 30-minute slots. A slot is emitted
// only when its end does not pass the closing time, so a trailing partial
// interval is dropped. Malformed input or open >= close yields an empty
// sequence: the gym is simply closed.
func Slots(open, close string) []Slot {
	openMin, err := ParseClock(open)
	if err != nil {
		return []Slot{}
	}

	closeMin, err := ParseClock(close)
	if err != nil {
		return []Slot{}
	}

	if openMin >= closeMin {
		return []Slot{}
	}

	slots := make([]Slot, 0, (closeMin-openMin)/SlotMinutes)
	for cur := openMin; cur+SlotMinutes <= closeMin; cur += SlotMinutes {
		start := FormatClock(cur)
		end := FormatClock(cur + SlotMinutes)
		slots = append(slots, Slot{
			Start: start,
			End:   end,
			Label: start + " - " + end,
		})
	}

	return slots
}
