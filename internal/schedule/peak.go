package schedule

import (
	"fmt"
	"math"
	"time"
)

// BookingSample is one historical booking reduced to what the peak-hour
// analysis needs.
type BookingSample struct {
	Date  time.Time
	Start int // minutes since midnight
	End   int
}

type DayAnalysis struct {
	Peak    []int `json:"peak"`
	OffPeak []int `json:"offPeak"`
}

type Recommendation struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hours       []string `json:"hours,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

type PeakAnalysis struct {
	PeakHours             map[string]DayAnalysis     `json:"peakHours"`
	HourlyData            map[string]map[int]float64 `json:"hourlyData"`
	OverallHourlyBusyness map[int]float64            `json:"overallHourlyBusyness"`
	Recommendations       []Recommendation           `json:"recommendations"`
	SampleSize            int                        `json:"sampleSize"`
}

var dayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday",
	"Thursday", "Friday", "Saturday",
}

func emptyAnalysis(sampleSize int) PeakAnalysis {
	peaks := make(map[string]DayAnalysis, len(dayNames))
	hourly := make(map[string]map[int]float64, len(dayNames))
	for _, day := range dayNames {
		peaks[day] = DayAnalysis{Peak: []int{}, OffPeak: []int{}}
		hourly[day] = map[int]float64{}
	}
	return PeakAnalysis{
		PeakHours:             peaks,
		HourlyData:            hourly,
		OverallHourlyBusyness: map[int]float64{},
		Recommendations:       []Recommendation{},
		SampleSize:            sampleSize,
	}
}

// hoursCovered lists the hour indices a [start, end) interval touches.
func hoursCovered(start, end int) []int {
	if start >= end {
		return nil
	}
	first := start / 60
	last := (end + 59) / 60
	hours := make([]int, 0, last-first)
	for h := first; h < last && h < 24; h++ {
		hours = append(hours, h)
	}
	return hours
}

// AnalyzePeakHours averages historical booking load per (day-of-week,
// hour) cell: overlap counts divided by the number of distinct dates
// observed for that weekday, so uneven historical coverage does not skew
// the result. An hour is peak for its day when its average is at least
// one population standard deviation above the day's mean (computed over
// hours that saw any load); off-peak is the symmetric low tail. With
// fewer than minSample bookings the analysis is returned empty rather
// than failing.
func AnalyzePeakHours(samples []BookingSample, minSample int) PeakAnalysis {
	if len(samples) < minSample {
		return emptyAnalysis(len(samples))
	}

	counts := make(map[string]map[int]int, len(dayNames))
	dates := make(map[string]map[string]struct{}, len(dayNames))
	for _, day := range dayNames {
		counts[day] = map[int]int{}
		dates[day] = map[string]struct{}{}
	}

	totalDates := map[string]struct{}{}
	totalCounts := map[int]int{}

	for _, s := range samples {
		day := s.Date.Weekday().String()
		dateKey := s.Date.Format("2006-01-02")
		dates[day][dateKey] = struct{}{}
		totalDates[dateKey] = struct{}{}
		for _, h := range hoursCovered(s.Start, s.End) {
			counts[day][h]++
			totalCounts[h]++
		}
	}

	result := emptyAnalysis(len(samples))

	for _, day := range dayNames {
		n := len(dates[day])
		if n == 0 {
			continue
		}

		averages := map[int]float64{}
		for h, c := range counts[day] {
			averages[h] = float64(c) / float64(n)
		}
		result.HourlyData[day] = averages

		mean, stddev := meanStddev(averages)
		if stddev == 0 {
			continue // uniform load, nothing stands out
		}

		analysis := DayAnalysis{Peak: []int{}, OffPeak: []int{}}
		for h := 0; h < 24; h++ {
			avg, ok := averages[h]
			if !ok {
				continue
			}
			switch {
			case avg >= mean+stddev:
				analysis.Peak = append(analysis.Peak, h)
			case avg <= mean-stddev:
				analysis.OffPeak = append(analysis.OffPeak, h)
			}
		}
		result.PeakHours[day] = analysis
	}

	if n := len(totalDates); n > 0 {
		for h, c := range totalCounts {
			result.OverallHourlyBusyness[h] = float64(c) / float64(n)
		}
	}

	result.Recommendations = buildRecommendations(result.PeakHours)

	return result
}

func meanStddev(values map[int]float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

const (
	eveningStart = 17
	eveningEnd   = 21
	morningStart = 6
	morningEnd   = 11
)

// buildRecommendations derives advisory scheduling hints from the weekly
// peak/off-peak classification. Advisory only; an empty list is a valid
// outcome.
func buildRecommendations(peakHours map[string]DayAnalysis) []Recommendation {
	recs := []Recommendation{}

	eveningPeaks := map[int]struct{}{}
	morningLulls := map[int]struct{}{}
	for _, day := range dayNames {
		for _, h := range peakHours[day].Peak {
			if h >= eveningStart && h <= eveningEnd {
				eveningPeaks[h] = struct{}{}
			}
		}
		for _, h := range peakHours[day].OffPeak {
			if h >= morningStart && h <= morningEnd {
				morningLulls[h] = struct{}{}
			}
		}
	}

	if len(eveningPeaks) >= 3 {
		recs = append(recs, Recommendation{
			Type:        "off_peak_discount",
			Title:       "Spread out the evening rush",
			Description: "Evening hours are consistently at peak load across the week.",
			Hours:       formatHourSet(eveningPeaks),
			Suggestion:  "Offer discounted rates outside 17:00-21:00 to shift demand.",
		})
	}

	if len(morningLulls) >= 3 {
		recs = append(recs, Recommendation{
			Type:        "morning_promotion",
			Title:       "Fill the quiet mornings",
			Description: "Morning hours see well below average demand.",
			Hours:       formatHourSet(morningLulls),
			Suggestion:  "Promote morning classes or early-bird passes.",
		})
	}

	return recs
}

func formatHourSet(hours map[int]struct{}) []string {
	out := make([]string, 0, len(hours))
	for h := 0; h < 24; h++ {
		if _, ok := hours[h]; ok {
			out = append(out, fmt.Sprintf("%02d:00", h))
		}
	}
	return out
}
