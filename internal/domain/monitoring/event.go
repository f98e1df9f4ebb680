package monitoring

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Position es la ubicación del recuadro de detección sobre el video, en % del frame.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event es una observación (simulada o real) de un sensor.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Category   string    `json:"category"`
	Confidence float64   `json:"confidence"`
	Hazardous  bool      `json:"hazardous"`
	Reason     string    `json:"reason,omitempty"`
	Position   *Position `json:"position,omitempty"`
	AudioLevel *float64  `json:"audioLevel,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventSource produce una observación por tick.
// Un backend real de sensores/IA implementa esta misma interfaz.
type EventSource interface {
	Next(now time.Time) Event
}

// RandomSource sortea categorías del catálogo según su peso y una confianza
// uniforme dentro del rango de la categoría.
type RandomSource struct {
	kind    Kind
	catalog Catalog
	total   float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource asume un catálogo ya validado.
// rnd nil => generador sembrado aleatoriamente.
func NewRandomSource(kind Kind, c Catalog, rnd *rand.Rand) *RandomSource {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	total := 0.0
	for _, cat := range c.Categories {
		total += cat.Weight
	}
	return &RandomSource{kind: kind, catalog: c, total: total, rnd: rnd}
}

func (s *RandomSource) Next(now time.Time) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.pick()
	e := Event{
		ID:         uuid.NewString(),
		Kind:       s.kind,
		Category:   cat.Name,
		Confidence: s.between(cat.Confidence.Min, cat.Confidence.Max),
		Hazardous:  cat.Hazardous,
		Timestamp:  now,
	}

	if cat.Hazardous && len(s.catalog.Reasons) > 0 {
		e.Reason = s.catalog.Reasons[s.rnd.IntN(len(s.catalog.Reasons))]
	}

	switch s.kind {
	case KindObject:
		e.Position = &Position{X: s.between(10, 70), Y: s.between(10, 70)}
	case KindEmotion:
		lvl := s.between(0, 100)
		e.AudioLevel = &lvl
	}
	return e
}

func (s *RandomSource) pick() Category {
	x := s.rnd.Float64() * s.total
	for _, cat := range s.catalog.Categories {
		if cat.Weight <= 0 {
			continue
		}
		if x < cat.Weight {
			return cat
		}
		x -= cat.Weight
	}
	// redondeo de punto flotante: devolvemos la última con peso
	for i := len(s.catalog.Categories) - 1; i >= 0; i-- {
		if s.catalog.Categories[i].Weight > 0 {
			return s.catalog.Categories[i]
		}
	}
	return s.catalog.Categories[0]
}

func (s *RandomSource) between(lo, hi float64) float64 {
	return lo + s.rnd.Float64()*(hi-lo)
}
