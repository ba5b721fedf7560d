package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("gym not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const gymColumns = `id, name, address, description, capacity,
	weekday_open, weekday_close, weekend_open, weekend_close,
	amenities, created_at, updated_at`

func (r *repository) Create(ctx context.Context, req CreateGymRequest) (*Gym, error) {
	query := `
		INSERT INTO gyms (name, address, description, capacity,
			weekday_open, weekday_close, weekend_open, weekend_close, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query,
		req.Name, req.Address, req.Description, req.Capacity,
		req.WeekdayOpen, req.WeekdayClose, req.WeekendOpen, req.WeekendClose,
		pq.StringArray(req.Amenities),
	)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms ORDER BY name ASC`

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &gym, nil
}

func (r *repository) Update(ctx context.Context, id int, req CreateGymRequest) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $2, address = $3, description = $4, capacity = $5,
			weekday_open = $6, weekday_close = $7,
			weekend_open = $8, weekend_close = $9,
			amenities = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id,
		req.Name, req.Address, req.Description, req.Capacity,
		req.WeekdayOpen, req.WeekdayClose, req.WeekendOpen, req.WeekendClose,
		pq.StringArray(req.Amenities),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &gym, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
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
