package babies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"babysafety/internal/stats"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("baby not found")
	ErrForbidden    = errors.New("forbidden")
)

// Dependent borra datos asociados a un bebé (feedings, análisis) cuando se elimina.
type Dependent interface {
	DeleteByBaby(ctx context.Context, babyID string) error
}

type Service struct {
	repo       Repository
	dependents []Dependent
	now        func() time.Time
}

func NewService(repo Repository, dependents ...Dependent) *Service {
	return &Service{
		repo:       repo,
		dependents: dependents,
		now:        time.Now,
	}
}

// AddDependents registra dependientes creados después del service (que a su vez dependen de él).
func (s *Service) AddDependents(deps ...Dependent) {
	s.dependents = append(s.dependents, deps...)
}

// Input se usa tanto para crear como para el PUT (reemplazo completo).
type Input struct {
	Name         string
	BirthDate    string // YYYY-MM-DD
	Gender       string
	Weight       string
	Height       string
	HealthIssues string
	Allergies    string
	Notes        string
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Baby, error) {
	if strings.TrimSpace(userID) == "" {
		return Baby{}, ErrInvalidInput
	}

	now := s.now()
	b := Baby{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(&b, in, now); err != nil {
		return Baby{}, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Baby{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Baby, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Baby{}, ErrNotFound
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Baby{}, err
	}
	b.AgeInMonths = stats.AgeInMonths(b.BirthDate, s.now())
	return b, nil
}

// ListByUser devuelve los bebés del usuario con la edad recalculada a hoy.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Baby, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range items {
		items[i].AgeInMonths = stats.AgeInMonths(items[i].BirthDate, now)
	}
	return items, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, in Input) (Baby, error) {
	current, err := s.Owned(ctx, id, userID)
	if err != nil {
		return Baby{}, err
	}

	now := s.now()
	updated := current
	updated.UpdatedAt = now
	if err := s.apply(&updated, in, now); err != nil {
		return Baby{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Baby{}, err
	}
	return updated, nil
}

// Delete borra primero los dependientes y después el bebé. Si falla un
// dependiente el bebé queda, y reintentar el borrado completa la limpieza.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	b, err := s.Owned(ctx, id, userID)
	if err != nil {
		return err
	}
	for _, d := range s.dependents {
		if err := d.DeleteByBaby(ctx, b.ID); err != nil {
			return fmt.Errorf("delete baby dependents: %w", err)
		}
	}
	return s.repo.Delete(ctx, b.ID)
}

func (s *Service) apply(b *Baby, in Input, now time.Time) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	raw := strings.TrimSpace(in.BirthDate)
	if raw == "" {
		return fmt.Errorf("%w: birthDate is required", ErrInvalidInput)
	}
	bd, err := stats.ParseDay(raw)
	if err != nil {
		return fmt.Errorf("%w: birthDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if raw > stats.DayString(now) {
		return fmt.Errorf("%w: birthDate cannot be in the future", ErrInvalidInput)
	}

	b.Name = name
	b.BirthDate = bd
	b.Gender = strings.TrimSpace(in.Gender)
	b.Weight = strings.TrimSpace(in.Weight)
	b.Height = strings.TrimSpace(in.Height)
	b.HealthIssues = strings.TrimSpace(in.HealthIssues)
	b.Allergies = strings.TrimSpace(in.Allergies)
	b.Notes = strings.TrimSpace(in.Notes)
	b.AgeInMonths = stats.AgeInMonths(bd, now)
	return nil
}
