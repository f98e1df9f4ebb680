package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"babysafety/internal/domain/babies"
)

type babyRepo struct {
	mu   sync.RWMutex
	byID map[string]babies.Baby
}

func NewBabyRepo() babies.Repository {
	return &babyRepo{
		byID: make(map[string]babies.Baby),
	}
}

func (r *babyRepo) Create(ctx context.Context, b babies.Baby) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("baby id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("baby already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *babyRepo) Update(ctx context.Context, b babies.Baby) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[b.ID]; !exists {
		return babies.ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *babyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return babies.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *babyRepo) GetByID(ctx context.Context, id string) (babies.Baby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return babies.Baby{}, babies.ErrNotFound
	}
	return b, nil
}

func (r *babyRepo) ListByUser(ctx context.Context, userID string) ([]babies.Baby, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]babies.Baby, 0)
	for _, b := range r.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}

	// orden de alta, como lo devuelve postgres
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
