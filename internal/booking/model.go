package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// transitions encodes the booking lifecycle. Cancelled and completed are
// terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Active reports whether a status counts against gym capacity.
func Active(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// Booking holds a user's reservation of a gym for a wall-clock interval
// on a calendar date. Dates are "YYYY-MM-DD", times "HH:MM"; the service
// is timezone-agnostic by design.
type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type BookingWithGym struct {
	Booking
	GymName    string `db:"gym_name" json:"gym_name"`
	GymAddress string `db:"gym_address" json:"gym_address"`
}

type CreateBookingRequest struct {
	GymID     int    `json:"gym_id" binding:"required"`
	Date      string `json:"date" binding:"required,dateonly"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListBookingsResponse struct {
	Count      int              `json:"count"`
	Pagination Pagination       `json:"pagination"`
	Data       []BookingWithGym `json:"data"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}
