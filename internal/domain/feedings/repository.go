package feedings

import "context"

// ListByBaby devuelve las tomas ordenadas por (date, time) ascendente.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	ListByBaby(ctx context.Context, babyID string) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteByBaby(ctx context.Context, babyID string) error
}
