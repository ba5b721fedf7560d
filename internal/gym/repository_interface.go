package gym

import "context"

type Repository interface {
	Create(ctx context.Context, req CreateGymRequest) (*Gym, error)
	GetAll(ctx context.Context) ([]Gym, error)
	GetByID(ctx context.Context, id int) (*Gym, error)
	Update(ctx context.Context, id int, req CreateGymRequest) (*Gym, error)
	Delete(ctx context.Context, id int) error
}
