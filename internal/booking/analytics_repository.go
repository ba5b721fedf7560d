package booking

import (
	"context"
	"time"
)

type StatsByDay struct {
	Bucket            string `db:"bucket" json:"bucket"`
	BookingsCreated   int    `db:"bookings_created" json:"bookings_created"`
	BookingsCancelled int    `db:"bookings_cancelled" json:"bookings_cancelled"`
}

type StatsByGym struct {
	GymID             int    `db:"gym_id" json:"gym_id"`
	GymName           string `db:"gym_name" json:"gym_name"`
	BookingsCreated   int    `db:"bookings_created" json:"bookings_created"`
	BookingsCancelled int    `db:"bookings_cancelled" json:"bookings_cancelled"`
}

func (r *repository) StatsByDay(ctx context.Context, from, to time.Time) ([]StatsByDay, error) {
	query := `
SELECT
  date AS bucket,
  COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed', 'completed')) AS bookings_created,
  COUNT(*) FILTER (WHERE status = 'cancelled')                            AS bookings_cancelled
FROM bookings
WHERE created_at BETWEEN $1 AND $2
GROUP BY date
ORDER BY bucket;
`
	var stats []StatsByDay
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) StatsByGym(ctx context.Context, from, to time.Time) ([]StatsByGym, error) {
	query := `
SELECT
  g.id   AS gym_id,
  g.name AS gym_name,
  COUNT(b.*) FILTER (WHERE b.status IN ('pending', 'confirmed', 'completed')) AS bookings_created,
  COUNT(b.*) FILTER (WHERE b.status = 'cancelled')                            AS bookings_cancelled
FROM gyms g
JOIN bookings b ON b.gym_id = g.id
WHERE b.created_at BETWEEN $1 AND $2
GROUP BY g.id, g.name
ORDER BY g.id;
`
	var stats []StatsByGym
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}
	return stats, nil
}
