package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"babysafety/internal/domain/feedings"
)

type feedingRepo struct {
	mu   sync.RWMutex
	byID map[string]feedings.Entry
}

func NewFeedingRepo() feedings.Repository {
	return &feedingRepo{
		byID: make(map[string]feedings.Entry),
	}
}

func (r *feedingRepo) Create(ctx context.Context, e feedings.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("feeding id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("feeding already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *feedingRepo) GetByID(ctx context.Context, id string) (feedings.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return feedings.Entry{}, feedings.ErrNotFound
	}
	return e, nil
}

func (r *feedingRepo) ListByBaby(ctx context.Context, babyID string) ([]feedings.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feedings.Entry, 0)
	for _, e := range r.byID {
		if e.BabyID == babyID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (r *feedingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return feedings.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *feedingRepo) DeleteByBaby(ctx context.Context, babyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.byID {
		if e.BabyID == babyID {
			delete(r.byID, id)
		}
	}
	return nil
}
