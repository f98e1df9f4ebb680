package babies

import "context"

type Repository interface {
	Create(ctx context.Context, b Baby) error
	Update(ctx context.Context, b Baby) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Baby, error)
	ListByUser(ctx context.Context, userID string) ([]Baby, error)
}
