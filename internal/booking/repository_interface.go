package booking

import (
	"context"
	"time"
)

type Repository interface {
	// CreateWithCapacityCheck inserts a booking only if, at every instant
	// of the requested interval, the number of active bookings stays
	// below capacity. The check and insert are atomic per (gym, date).
	CreateWithCapacityCheck(ctx context.Context, userID, gymID int, date, start, end string, capacity int) (*Booking, error)

	GetByID(ctx context.Context, id int) (*Booking, error)
	UpdateStatus(ctx context.Context, id int, from, to string) error
	Delete(ctx context.Context, id int) error

	ListByUser(ctx context.Context, userID, limit, offset int) ([]BookingWithGym, error)
	CountByUser(ctx context.Context, userID int) (int, error)
	ListByGym(ctx context.Context, gymID int) ([]BookingWithGym, error)

	ListActiveForDate(ctx context.Context, gymID int, date string) ([]Booking, error)
	ListHistorySince(ctx context.Context, gymID int, fromDate string) ([]Booking, error)
	UserHasActiveBooking(ctx context.Context, userID, gymID int, date, start string) (bool, error)

	StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error)
	StatsByGym(ctx context.Context, from, to time.Time) ([]StatsByGym, error)
}
