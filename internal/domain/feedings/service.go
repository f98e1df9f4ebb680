package feedings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"babysafety/internal/domain/babies"
	"babysafety/internal/stats"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("feeding entry not found")
)

// Babies es lo único que necesitamos del módulo babies: validar ownership.
type Babies interface {
	Owned(ctx context.Context, babyID, userID string) (babies.Baby, error)
}

type Service struct {
	repo   Repository
	babies Babies
	now    func() time.Time
}

func NewService(repo Repository, b Babies) *Service {
	return &Service{
		repo:   repo,
		babies: b,
		now:    time.Now,
	}
}

type CreateInput struct {
	BabyID   string
	Time     string
	Date     string // opcional; default hoy
	FoodType string
	Amount   string
	Notes    string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Entry, error) {
	in.BabyID = strings.TrimSpace(in.BabyID)
	in.Time = strings.TrimSpace(in.Time)
	in.FoodType = strings.TrimSpace(in.FoodType)
	in.Amount = strings.TrimSpace(in.Amount)

	switch {
	case in.BabyID == "":
		return Entry{}, fmt.Errorf("%w: babyId is required", ErrInvalidInput)
	case !stats.ValidClock(in.Time):
		return Entry{}, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	case in.FoodType == "":
		return Entry{}, fmt.Errorf("%w: foodType is required", ErrInvalidInput)
	case in.Amount == "":
		return Entry{}, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}

	now := s.now()
	day, err := s.dayOrToday(in.Date, now)
	if err != nil {
		return Entry{}, err
	}

	if _, err := s.babies.Owned(ctx, in.BabyID, userID); err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:        uuid.NewString(),
		BabyID:    in.BabyID,
		UserID:    userID,
		Time:      in.Time,
		Date:      day,
		FoodType:  in.FoodType,
		Amount:    in.Amount,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByBaby(ctx context.Context, userID, babyID string) ([]Entry, error) {
	if _, err := s.babies.Owned(ctx, babyID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByBaby(ctx, babyID)
}

// TodaySummary es la vista del día: cabecera derivada + tomas de ese día.
type TodaySummary struct {
	stats.FeedSummary
	Entries []Entry
}

// Today arma el resumen de day (YYYY-MM-DD); day vacío = hoy según el reloj del servidor.
func (s *Service) Today(ctx context.Context, userID, babyID, day string) (TodaySummary, error) {
	day, err := s.dayOrToday(day, s.now())
	if err != nil {
		return TodaySummary{}, err
	}

	all, err := s.ListByBaby(ctx, userID, babyID)
	if err != nil {
		return TodaySummary{}, err
	}

	entries := stats.FilterByDay(all, day, func(e Entry) string { return e.Date })
	times := make([]string, 0, len(entries))
	for _, e := range entries {
		times = append(times, e.Time)
	}

	return TodaySummary{
		FeedSummary: stats.SummarizeFeeds(day, times),
		Entries:     entries,
	}, nil
}

func (s *Service) Delete(ctx context.Context, userID, babyID, entryID string) error {
	if _, err := s.babies.Owned(ctx, babyID, userID); err != nil {
		return err
	}

	e, err := s.repo.GetByID(ctx, strings.TrimSpace(entryID))
	if err != nil {
		return err
	}
	// una toma de otro bebé se trata como inexistente
	if e.BabyID != babyID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, e.ID)
}

// Latest devuelve la toma más reciente del bebé por (date, time).
// No valida ownership: lo hace quien llama.
func (s *Service) Latest(ctx context.Context, babyID string) (Entry, bool, error) {
	items, err := s.repo.ListByBaby(ctx, babyID)
	if err != nil {
		return Entry{}, false, err
	}
	if len(items) == 0 {
		return Entry{}, false, nil
	}
	latest := items[0]
	for _, e := range items[1:] {
		if e.Date+" "+e.Time > latest.Date+" "+latest.Time {
			latest = e
		}
	}
	return latest, true, nil
}

// DeleteByBaby implementa babies.Dependent.
func (s *Service) DeleteByBaby(ctx context.Context, babyID string) error {
	return s.repo.DeleteByBaby(ctx, babyID)
}

func (s *Service) dayOrToday(day string, now time.Time) (string, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		return stats.DayString(now), nil
	}
	if _, err := stats.ParseDay(day); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return day, nil
}
