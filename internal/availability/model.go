package availability

import (
	"github.com/brianstm/fithub-orbital25-sub001/internal/gym"
	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"
)

// AvailabilityResponse is the per-date availability view: one entry per
// open hour plus a day summary.
type AvailabilityResponse struct {
	Gym                gym.Summary          `json:"gym"`
	Date               string               `json:"date"`
	DayOfWeek          string               `json:"dayOfWeek"`
	HourlyAvailability []schedule.HourEntry `json:"hourlyAvailability"`
	Summary            DaySummary           `json:"summary"`
}

// DaySummary totals a day: totalSlots is capacity multiplied by the
// number of open hours, bookedSlots the occupancy sum across them.
type DaySummary struct {
	TotalSlots   int   `json:"totalSlots"`
	BookedSlots  int   `json:"bookedSlots"`
	PeakHours    []int `json:"peakHours"`
	OffPeakHours []int `json:"offPeakHours"`
}

type PeakHoursResponse struct {
	Gym                   gym.Summary                     `json:"gym"`
	PeakHours             map[string]schedule.DayAnalysis `json:"peakHours"`
	HourlyData            map[string]map[int]float64      `json:"hourlyData"`
	OverallHourlyBusyness map[int]float64                 `json:"overallHourlyBusyness"`
	Recommendations       []schedule.Recommendation       `json:"recommendations"`
}

// SlotAvailability is one 30-minute picker slot with its headroom.
type SlotAvailability struct {
	schedule.Slot
	BookedCount int  `json:"booked_count"`
	Available   int  `json:"available"`
	IsFull      bool `json:"is_full"`
}

type SlotsResponse struct {
	Gym   gym.Summary        `json:"gym"`
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}
