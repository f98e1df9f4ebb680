package cryanalysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"babysafety/internal/domain/babies"
	"babysafety/internal/domain/feedings"
	"babysafety/internal/platform/logger"
	"babysafety/internal/stats"
)

type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

type Babies interface {
	Owned(ctx context.Context, babyID, userID string) (babies.Baby, error)
}

type Feedings interface {
	Latest(ctx context.Context, babyID string) (feedings.Entry, bool, error)
}

type Service struct {
	repo     Repository
	babies   Babies
	feedings Feedings
	remote   Analyzer // nil = solo reglas
	rules    Analyzer
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, b Babies, f Feedings, remote Analyzer, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		babies:   b,
		feedings: f,
		remote:   remote,
		rules:    RuleAnalyzer{},
		log:      log,
		now:      time.Now,
	}
}

type Input struct {
	RoomTemperature *float64
	FoodTemperature *float64
	Crying          bool
}

// Analyze arma el contexto (edad + última toma), consulta el endpoint remoto
// y si falla usa las reglas locales. El resultado se guarda al frente del historial.
func (s *Service) Analyze(ctx context.Context, userID, babyID string, in Input) (Analysis, error) {
	b, err := s.babies.Owned(ctx, babyID, userID)
	if err != nil {
		return Analysis{}, err
	}

	now := s.now()
	req := Request{
		BabyID:          b.ID,
		AgeMonths:       stats.AgeInMonths(b.BirthDate, now),
		WeightKg:        ptrIf(ParseWeightKg(b.Weight)),
		RoomTemperature: in.RoomTemperature,
		FoodTemperature: in.FoodTemperature,
		Crying:          in.Crying,
	}

	last, ok, err := s.feedings.Latest(ctx, b.ID)
	if err != nil {
		return Analysis{}, err
	}
	if ok {
		req.HasLastFeeding = true
		req.LastFeedingTime = last.Time
		req.LastFeedingAmount = last.Amount
		req.LastFeedingFood = last.FoodType
		req.MinutesSinceFeed = minutesSince(last, now)
		req.LastFeedingML = ptrIf(ParseAmountML(last.Amount))
	}

	res, err := s.analyze(ctx, req)
	if err != nil {
		return Analysis{}, err
	}

	a := Analysis{
		ID:              uuid.NewString(),
		BabyID:          b.ID,
		Time:            now.Format(stats.TimeLayout),
		Reason:          res.Reason,
		Confidence:      res.Confidence,
		Recommendation:  res.Recommendation,
		Reasons:         res.Reasons,
		Recommendations: res.Recommendations,
		Suitability:     res.Suitability,
		Source:          res.Source,
		CreatedAt:       now,
	}
	if err := s.repo.Add(ctx, a); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

func (s *Service) analyze(ctx context.Context, req Request) (Result, error) {
	if s.remote != nil {
		res, err := s.remote.Analyze(ctx, req)
		if err == nil {
			return res, nil
		}
		s.log.Warn("remote cry analysis failed, using rules", map[string]any{
			"baby_id": req.BabyID,
			"err":     err,
		})
	}
	return s.rules.Analyze(ctx, req)
}

func (s *Service) List(ctx context.Context, userID, babyID string) ([]Analysis, error) {
	if _, err := s.babies.Owned(ctx, babyID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByBaby(ctx, babyID)
}

// DeleteByBaby implementa babies.Dependent.
func (s *Service) DeleteByBaby(ctx context.Context, babyID string) error {
	return s.repo.DeleteByBaby(ctx, babyID)
}

// minutesSince interpreta date+time de la toma en la zona de now. Nunca negativo.
func minutesSince(e feedings.Entry, now time.Time) int {
	at, err := time.ParseInLocation(stats.DayLayout+" "+stats.TimeLayout, e.Date+" "+e.Time, now.Location())
	if err != nil {
		return 0
	}
	d := now.Sub(at)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
