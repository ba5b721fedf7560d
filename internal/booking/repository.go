package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brianstm/fithub-orbital25-sub001/internal/db"
	"github.com/brianstm/fithub-orbital25-sub001/internal/schedule"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrCapacityConflict = errors.New("gym is at capacity for the requested interval")
	ErrStatusChanged    = errors.New("booking status changed concurrently")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, user_id, gym_id, date, start_time, end_time, status, created_at, updated_at`

// CreateWithCapacityCheck serializes booking writes per (gym, date) with a
// transaction-scoped Postgres advisory lock, then checks the peak
// concurrent overlap of active bookings across the requested interval
// before inserting. Concurrent creators for the same gym and date queue on
// the lock, so the check-then-insert pair is atomic and the capacity
// invariant holds across replicas.
func (r *repository) CreateWithCapacityCheck(ctx context.Context, userID, gymID int, date, start, end string, capacity int) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockKey := fmt.Sprintf("bookings:%d:%s", gymID, date)
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return nil, err
	}

	var existing []Booking
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE gym_id = $1 AND date = $2
		  AND status IN ('pending', 'confirmed')
		  AND start_time < $3 AND end_time > $4
	`
	if err := tx.SelectContext(ctx, &existing, query, gymID, date, end, start); err != nil {
		return nil, err
	}

	window, err := intervalOf(start, end)
	if err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(existing))
	for _, b := range existing {
		iv, err := intervalOf(b.StartTime, b.EndTime)
		if err != nil {
			continue // malformed row, does not count against capacity
		}
		intervals = append(intervals, iv)
	}

	if schedule.MaxConcurrent(intervals, window) >= capacity {
		return nil, ErrCapacityConflict
	}

	insert := `
		INSERT INTO bookings (user_id, gym_id, date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + bookingColumns

	var booking Booking
	if err := tx.GetContext(ctx, &booking, insert, userID, gymID, date, start, end); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func intervalOf(start, end string) (schedule.Interval, error) {
	s, err := schedule.ParseClock(start)
	if err != nil {
		return schedule.Interval{}, err
	}
	e, err := schedule.ParseClock(end)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.Interval{Start: s, End: e}, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &booking, nil
}

// UpdateStatus applies a transition conditionally: the row is touched only
// while it still holds the expected current status, so concurrent
// transitions cannot stack.
func (r *repository) UpdateStatus(ctx context.Context, id int, from, to string) error {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

const bookingWithGymSelect = `
	SELECT
		b.id, b.user_id, b.gym_id, b.date, b.start_time, b.end_time,
		b.status, b.created_at, b.updated_at,
		g.name AS gym_name,
		g.address AS gym_address
	FROM bookings b
	JOIN gyms g ON b.gym_id = g.id
`

func (r *repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]BookingWithGym, error) {
	query := bookingWithGymSelect + `
		WHERE b.user_id = $1
		ORDER BY b.date ASC, b.start_time ASC
		LIMIT $2 OFFSET $3
	`

	var bookings []BookingWithGym
	err := r.db.SelectContext(ctx, &bookings, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) CountByUser(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ListByGym(ctx context.Context, gymID int) ([]BookingWithGym, error) {
	query := bookingWithGymSelect + `
		WHERE b.gym_id = $1
		ORDER BY b.date DESC, b.start_time DESC
	`

	var bookings []BookingWithGym
	err := r.db.SelectContext(ctx, &bookings, query, gymID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListActiveForDate(ctx context.Context, gymID int, date string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE gym_id = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, gymID, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListHistorySince feeds the peak-hour analysis. Cancelled bookings never
// happened as far as load is concerned; completed ones are the strongest
// signal, so everything but cancelled counts.
func (r *repository) ListHistorySince(ctx context.Context, gymID int, fromDate string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE gym_id = $1 AND date >= $2 AND status != 'cancelled'
		ORDER BY date ASC, start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, gymID, fromDate)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) UserHasActiveBooking(ctx context.Context, userID, gymID int, date, start string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND gym_id = $2 AND date = $3 AND start_time = $4
			  AND status IN ('pending', 'confirmed')
		)
	`

	return db.Exists(ctx, r.db, query, userID, gymID, date, start)
}
