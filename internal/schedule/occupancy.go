package schedule

import "sort"

// Busy-level thresholds over the occupancy rate. Tunable constants, not
// business law.
const (
	BusyMediumThreshold = 0.34
	BusyHighThreshold   = 0.67
)

const (
	BusyLow    = "low"
	BusyMedium = "medium"
	BusyHigh   = "high"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// HourEntry describes one hour of a gym's day for availability display.
type HourEntry struct {
	Hour           int     `json:"hour"`
	TimeSlot       string  `json:"timeSlot"`
	AvailableSlots int     `json:"availableSlots"`
	Occupancy      int     `json:"occupancy"`
	OccupancyRate  float64 `json:"occupancyRate"`
	BusyLevel      string  `json:"busyLevel"`
	IsPeakHour     bool    `json:"isPeakHour"`
	IsOffPeakHour  bool    `json:"isOffPeakHour"`
	Recommended    bool    `json:"recommended"`
}

// BusyLevelFor classifies an occupancy rate. Monotonic in the rate.
func BusyLevelFor(rate float64) string {
	switch {
	case rate < BusyMediumThreshold:
		return BusyLow
	case rate < BusyHighThreshold:
		return BusyMedium
	default:
		return BusyHigh
	}
}

// HourlyOccupancy computes per-hour occupancy over [open, close) given the
// active (pending or confirmed) booking intervals for one date. A zero
// capacity never divides: the hour reports full occupancy and no
// availability.
func HourlyOccupancy(capacity int, open, close string, bookings []Interval) []HourEntry {
	openMin, err := ParseClock(open)
	if err != nil {
		return []HourEntry{}
	}

	closeMin, err := ParseClock(close)
	if err != nil || openMin >= closeMin {
		return []HourEntry{}
	}

	firstHour := openMin / 60
	lastHour := (closeMin + 59) / 60 // exclusive

	entries := make([]HourEntry, 0, lastHour-firstHour)
	for h := firstHour; h < lastHour; h++ {
		hour := Interval{Start: h * 60, End: (h + 1) * 60}

		occupancy := 0
		for _, b := range bookings {
			if b.Overlaps(hour) {
				occupancy++
			}
		}

		var rate float64
		var available int
		if capacity > 0 {
			rate = float64(occupancy) / float64(capacity)
			if rate > 1 {
				rate = 1
			}
			available = capacity - occupancy
			if available < 0 {
				available = 0
			}
		} else {
			rate = 1
		}

		entries = append(entries, HourEntry{
			Hour:           h,
			TimeSlot:       FormatClock(h*60) + " - " + FormatClock(((h+1)*60)%(24*60)),
			AvailableSlots: available,
			Occupancy:      occupancy,
			OccupancyRate:  rate,
			BusyLevel:      BusyLevelFor(rate),
		})
	}

	return entries
}

// MaxConcurrent returns the highest number of intervals that overlap at
// any single instant within the given window. Used by the booking guard
// to enforce capacity at every instant, not just per matching slot.
func MaxConcurrent(bookings []Interval, window Interval) int {
	type event struct {
		at    int
		delta int
	}

	events := make([]event, 0, len(bookings)*2)
	for _, b := range bookings {
		start := b.Start
		if start < window.Start {
			start = window.Start
		}
		end := b.End
		if end > window.End {
			end = window.End
		}
		if start >= end {
			continue
		}
		events = append(events, event{at: start, delta: 1}, event{at: end, delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].at == events[j].at {
			return events[i].delta < events[j].delta // process ends before starts
		}
		return events[i].at < events[j].at
	})

	max, cur := 0, 0
	for _, e := range events {
		cur += e.delta
		if cur > max {
			max = cur
		}
	}

	return max
}
