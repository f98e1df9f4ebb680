package cryanalysis

import "context"

// Repository: Add inserta al frente; ListByBaby devuelve del más nuevo al más viejo.
type Repository interface {
	Add(ctx context.Context, a Analysis) error
	ListByBaby(ctx context.Context, babyID string) ([]Analysis, error)
	DeleteByBaby(ctx context.Context, babyID string) error
}
