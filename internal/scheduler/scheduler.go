// Package scheduler corre las tareas periódicas del servidor.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"babysafety/internal/domain/monitoring"
	"babysafety/internal/platform/logger"
)

// Service detiene los monitores que quedaron activos más de MaxRuntime
// (p.ej. un cliente que se cerró sin llamar a /stop).
type Service struct {
	Registry   *monitoring.Registry
	MaxRuntime time.Duration
	Spec       string // expresión cron; default "@every 1m"
	Log        logger.Logger
}

// Start registra el barrido y arranca el cron. El caller debe llamar Stop().
func (s *Service) Start() (*cron.Cron, error) {
	spec := s.Spec
	if spec == "" {
		spec = "@every 1m"
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.Sweep() }); err != nil {
		return nil, fmt.Errorf("scheduler: bad spec %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

// Sweep es una pasada del barrido. Devuelve cuántos monitores detuvo.
func (s *Service) Sweep() int {
	if s.Registry == nil || s.MaxRuntime <= 0 {
		return 0
	}
	n := s.Registry.StopOverdue(s.MaxRuntime)
	if n > 0 && s.Log != nil {
		s.Log.Info("stopped overdue monitors", map[string]any{
			"count":       n,
			"max_runtime": s.MaxRuntime.String(),
		})
	}
	return n
}

// Run arranca el cron y lo detiene cuando ctx termina, esperando a que
// finalicen las tareas en curso.
func (s *Service) Run(ctx context.Context) error {
	c, err := s.Start()
	if err != nil {
		return err
	}
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
