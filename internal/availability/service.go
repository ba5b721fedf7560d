package availability

import (
	"context"
	"errors"
	"time"

	"github.com/brianstm/fithub-orbital25-sub001/internal/booking"
	"github.com/brianstm/fithub-orbital25-sub001/internal/gym"
	"github.com/brianstm/fithub-orbital25-sub001/internal/metrics"
	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"
)

var (
	ErrGymNotFound = errors.New("gym not found")
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
)

type Service interface {
	GetAvailability(ctx context.Context, gymID int, date string) (*AvailabilityResponse, error)
	GetPeakHours(ctx context.Context, gymID int) (*PeakHoursResponse, error)
	GetSlots(ctx context.Context, gymID int, date string) (*SlotsResponse, error)
}

type service struct {
	gymRepo     gym.Repository
	bookingRepo booking.Repository
	cache       *Cache

	windowDays int
	minSample  int
}

func NewService(gymRepo gym.Repository, bookingRepo booking.Repository, cache *Cache, windowDays, minSample int) Service {
	return &service{
		gymRepo:     gymRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		windowDays:  windowDays,
		minSample:   minSample,
	}
}

const dateLayout = "2006-01-02"

func (s *service) GetAvailability(ctx context.Context, gymID int, date string) (*AvailabilityResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	g, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	metrics.RecordAvailabilityRequest()

	bookings, err := s.bookingRepo.ListActiveForDate(ctx, gymID, date)
	if err != nil {
		return nil, err
	}

	openStr, closeStr := g.HoursFor(day)
	entries := schedule.HourlyOccupancy(g.Capacity, openStr, closeStr, toIntervals(bookings))

	analysis, err := s.peakAnalysis(ctx, gymID)
	if err != nil {
		return nil, err
	}

	dayName := day.Weekday().String()
	dayPeaks := analysis.PeakHours[dayName]

	peakSet := toSet(dayPeaks.Peak)
	offPeakSet := toSet(dayPeaks.OffPeak)

	summary := DaySummary{
		PeakHours:    dayPeaks.Peak,
		OffPeakHours: dayPeaks.OffPeak,
	}
	if summary.PeakHours == nil {
		summary.PeakHours = []int{}
	}
	if summary.OffPeakHours == nil {
		summary.OffPeakHours = []int{}
	}

	for i := range entries {
		_, isPeak := peakSet[entries[i].Hour]
		_, isOffPeak := offPeakSet[entries[i].Hour]
		entries[i].IsPeakHour = isPeak
		entries[i].IsOffPeakHour = isOffPeak
		entries[i].Recommended = isOffPeak &&
			entries[i].BusyLevel == schedule.BusyLow &&
			entries[i].AvailableSlots > 0

		summary.TotalSlots += g.Capacity
		summary.BookedSlots += entries[i].Occupancy
	}

	return &AvailabilityResponse{
		Gym:                g.Summary(),
		Date:               date,
		DayOfWeek:          dayName,
		HourlyAvailability: entries,
		Summary:            summary,
	}, nil
}

func (s *service) GetPeakHours(ctx context.Context, gymID int) (*PeakHoursResponse, error) {
	g, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	analysis, err := s.peakAnalysis(ctx, gymID)
	if err != nil {
		return nil, err
	}

	return &PeakHoursResponse{
		Gym:                   g.Summary(),
		PeakHours:             analysis.PeakHours,
		HourlyData:            analysis.HourlyData,
		OverallHourlyBusyness: analysis.OverallHourlyBusyness,
		Recommendations:       analysis.Recommendations,
	}, nil
}

func (s *service) GetSlots(ctx context.Context, gymID int, date string) (*SlotsResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	g, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	bookings, err := s.bookingRepo.ListActiveForDate(ctx, gymID, date)
	if err != nil {
		return nil, err
	}
	intervals := toIntervals(bookings)

	openStr, closeStr := g.HoursFor(day)
	slots := schedule.Slots(openStr, closeStr)

	result := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		start, _ := schedule.ParseClock(slot.Start)
		window := schedule.Interval{Start: start, End: start + schedule.SlotMinutes}

		booked := 0
		for _, iv := range intervals {
			if iv.Overlaps(window) {
				booked++
			}
		}

		available := g.Capacity - booked
		if available < 0 {
			available = 0
		}

		result = append(result, SlotAvailability{
			Slot:        slot,
			BookedCount: booked,
			Available:   available,
			IsFull:      available == 0,
		})
	}

	return &SlotsResponse{
		Gym:   g.Summary(),
		Date:  date,
		Slots: result,
	}, nil
}

// peakAnalysis serves the cached analysis when fresh enough, otherwise
// recomputes it over the trailing window. Reads here are advisory; they
// tolerate staleness up to the cache TTL.
func (s *service) peakAnalysis(ctx context.Context, gymID int) (*schedule.PeakAnalysis, error) {
	if cached, ok := s.cache.Get(ctx, gymID); ok {
		return cached, nil
	}

	fromDate := time.Now().AddDate(0, 0, -s.windowDays).Format(dateLayout)
	history, err := s.bookingRepo.ListHistorySince(ctx, gymID, fromDate)
	if err != nil {
		return nil, err
	}

	samples := make([]schedule.BookingSample, 0, len(history))
	for _, b := range history {
		date, err := time.Parse(dateLayout, b.Date)
		if err != nil {
			continue
		}
		start, err := schedule.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		end, err := schedule.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		samples = append(samples, schedule.BookingSample{Date: date, Start: start, End: end})
	}

	analysis := schedule.AnalyzePeakHours(samples, s.minSample)
	s.cache.Set(ctx, gymID, &analysis)

	return &analysis, nil
}

func toIntervals(bookings []booking.Booking) []schedule.Interval {
	intervals := make([]schedule.Interval, 0, len(bookings))
	for _, b := range bookings {
		start, err := schedule.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		end, err := schedule.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, schedule.Interval{Start: start, End: end})
	}
	return intervals
}

func toSet(hours []int) map[int]struct{} {
	set := make(map[int]struct{}, len(hours))
	for _, h := range hours {
		set[h] = struct{}{}
	}
	return set
}
