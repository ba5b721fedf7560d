package gym

import (
	"time"

	"github.com/lib/pq"
)

type Gym struct {
	ID           int            `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Address      string         `db:"address" json:"address"`
	Description  string         `db:"description" json:"description"`
	Capacity     int            `db:"capacity" json:"capacity"`
	WeekdayOpen  string         `db:"weekday_open" json:"weekday_open"`
	WeekdayClose string         `db:"weekday_close" json:"weekday_close"`
	WeekendOpen  string         `db:"weekend_open" json:"weekend_open"`
	WeekendClose string         `db:"weekend_close" json:"weekend_close"`
	Amenities    pq.StringArray `db:"amenities" json:"amenities"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// HoursFor selects the opening hours that apply to the given date.
// Saturday and Sunday use weekend hours.
func (g *Gym) HoursFor(date time.Time) (open, close string) {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return g.WeekendOpen, g.WeekendClose
	default:
		return g.WeekdayOpen, g.WeekdayClose
	}
}

// Summary is the compact gym representation embedded in availability and
// peak-hours responses.
type Summary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (g *Gym) Summary() Summary {
	return Summary{ID: g.ID, Name: g.Name, Capacity: g.Capacity}
}

type CreateGymRequest struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity" binding:"required,min=1"`
	WeekdayOpen  string   `json:"weekday_open" binding:"required,hhmm"`
	WeekdayClose string   `json:"weekday_close" binding:"required,hhmm"`
	WeekendOpen  string   `json:"weekend_open" binding:"required,hhmm"`
	WeekendClose string   `json:"weekend_close" binding:"required,hhmm"`
	Amenities    []string `json:"amenities"`
}
