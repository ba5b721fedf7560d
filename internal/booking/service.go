package booking

import (
	"context"
	"errors"
	"time"

	"github.com/brianstm/fithub-orbital25-sub001/internal/gym"
	"github.com/brianstm/fithub-orbital25-sub001/internal/logger"
	"github.com/brianstm/fithub-orbital25-sub001/internal/metrics"
	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"
)

var (
	ErrGymNotFound         = errors.New("gym not found")
	ErrInvalidDate         = errors.New("invalid date, use YYYY-MM-DD")
	ErrDateInPast          = errors.New("cannot book a date in the past")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrGymClosed           = errors.New("gym is closed on that day")
	ErrOutsideHours        = errors.New("requested interval is outside opening hours")
	ErrDuplicateBooking    = errors.New("user already has a booking for this slot")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrNotOwner            = errors.New("can only manage own bookings")
	ErrForbiddenTransition = errors.New("users can only cancel bookings")
)

// Notifier sends booking lifecycle mail. Best effort: a failed
// notification never fails the booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, email, gymName, date, start, end string) error
	SendBookingCancellation(ctx context.Context, email, gymName, date, start string) error
}

// PeakCacheInvalidator drops a gym's cached peak-hour analysis after a
// booking write so the next read recomputes it instead of waiting out
// the TTL.
type PeakCacheInvalidator interface {
	Invalidate(ctx context.Context, gymID int)
}

type Service interface {
	Create(ctx context.Context, userID int, userEmail string, req CreateBookingRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, userID int, userEmail, role string, bookingID int, status string) (*Booking, error)
	GetByID(ctx context.Context, userID int, role string, bookingID int) (*Booking, error)
	ListMine(ctx context.Context, userID, page, limit int) (*ListBookingsResponse, error)
	ListByGym(ctx context.Context, gymID int) ([]BookingWithGym, error)
	Delete(ctx context.Context, bookingID int) error
	StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error)
	StatsByGym(ctx context.Context, from, to time.Time) ([]StatsByGym, error)
}

type service struct {
	repo     Repository
	gymRepo  gym.Repository
	notifier Notifier
	cache    PeakCacheInvalidator
}

func NewService(repo Repository, gymRepo gym.Repository, notifier Notifier, cache PeakCacheInvalidator) Service {
	return &service{
		repo:     repo,
		gymRepo:  gymRepo,
		notifier: notifier,
		cache:    cache,
	}
}

const dateLayout = "2006-01-02"

func (s *service) Create(ctx context.Context, userID int, userEmail string, req CreateBookingRequest) (*Booking, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if req.Date < time.Now().Format(dateLayout) {
		return nil, ErrDateInPast
	}

	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := schedule.ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if end <= start {
		return nil, ErrInvalidTimeRange
	}

	g, err := s.gymRepo.GetByID(ctx, req.GymID)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	openStr, closeStr := g.HoursFor(date)
	openMin, err := schedule.ParseClock(openStr)
	if err != nil {
		return nil, ErrGymClosed
	}
	closeMin, err := schedule.ParseClock(closeStr)
	if err != nil || openMin >= closeMin {
		return nil, ErrGymClosed
	}
	if start < openMin || end > closeMin {
		return nil, ErrOutsideHours
	}

	exists, err := s.repo.UserHasActiveBooking(ctx, userID, req.GymID, req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBooking
	}

	booking, err := s.repo.CreateWithCapacityCheck(ctx, userID, req.GymID, req.Date, req.StartTime, req.EndTime, g.Capacity)
	if err != nil {
		if errors.Is(err, ErrCapacityConflict) {
			metrics.RecordCapacityConflict()
		}
		return nil, err
	}

	metrics.RecordBooking(booking.Status)

	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.GymID)
	}

	if s.notifier != nil && userEmail != "" {
		if err := s.notifier.SendBookingConfirmation(ctx, userEmail, g.Name, booking.Date, booking.StartTime, booking.EndTime); err != nil {
			logger.Error("Failed to queue booking confirmation", "error", err, "booking_id", booking.ID)
		}
	}

	return booking, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID int, userEmail, role string, bookingID int, status string) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if role != "admin" {
		if booking.UserID != userID {
			return nil, ErrNotOwner
		}
		if status != StatusCancelled {
			return nil, ErrForbiddenTransition
		}
	}

	if !CanTransition(booking.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, booking.Status, status); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			// Lost the race: the stored status moved under us, so the
			// transition we validated no longer applies.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	metrics.RecordStatusTransition(booking.Status, status)

	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.GymID)
	}

	// Cancellation mail goes to the booking owner, whose address we only
	// know when the owner is the caller.
	if status == StatusCancelled && s.notifier != nil && booking.UserID == userID && userEmail != "" {
		if g, gerr := s.gymRepo.GetByID(ctx, booking.GymID); gerr == nil {
			if err := s.notifier.SendBookingCancellation(ctx, userEmail, g.Name, booking.Date, booking.StartTime); err != nil {
				logger.Error("Failed to queue cancellation notice", "error", err, "booking_id", booking.ID)
			}
		}
	}

	booking.Status = status
	return booking, nil
}

func (s *service) GetByID(ctx context.Context, userID int, role string, bookingID int) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if role != "admin" && booking.UserID != userID {
		return nil, ErrNotOwner
	}

	return booking, nil
}

func (s *service) ListMine(ctx context.Context, userID, page, limit int) (*ListBookingsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pages := (total + limit - 1) / limit

	return &ListBookingsResponse{
		Count: len(bookings),
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Pages: pages,
		},
		Data: bookings,
	}, nil
}

func (s *service) ListByGym(ctx context.Context, gymID int) ([]BookingWithGym, error) {
	return s.repo.ListByGym(ctx, gymID)
}

func (s *service) Delete(ctx context.Context, bookingID int) error {
	return s.repo.Delete(ctx, bookingID)
}

func (s *service) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	return s.repo.StatsByDay(ctx, from, to)
}

func (s *service) StatsByGym(ctx context.Context, from, to time.Time) ([]StatsByGym, error) {
	return s.repo.StatsByGym(ctx, from, to)
}
