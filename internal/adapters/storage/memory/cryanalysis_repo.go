package memory

import (
	"context"
	"sync"

	"babysafety/internal/domain/cryanalysis"
)

// cryRepo guarda una lista por bebé con el más nuevo primero. No hay límite.
type cryRepo struct {
	mu     sync.RWMutex
	byBaby map[string][]cryanalysis.Analysis
}

func NewCryAnalysisRepo() cryanalysis.Repository {
	return &cryRepo{
		byBaby: make(map[string][]cryanalysis.Analysis),
	}
}

func (r *cryRepo) Add(ctx context.Context, a cryanalysis.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byBaby[a.BabyID] = append([]cryanalysis.Analysis{a}, r.byBaby[a.BabyID]...)
	return nil
}

func (r *cryRepo) ListByBaby(ctx context.Context, babyID string) ([]cryanalysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byBaby[babyID]
	out := make([]cryanalysis.Analysis, len(items))
	copy(out, items)
	return out, nil
}

func (r *cryRepo) DeleteByBaby(ctx context.Context, babyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byBaby, babyID)
	return nil
}
