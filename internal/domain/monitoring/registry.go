package monitoring

import (
	"strings"
	"sync"
	"time"

	"babysafety/internal/platform/logger"
)

type key struct {
	userID string
	kind   Kind
}

// SourceFactory crea la fuente de eventos de un monitor nuevo.
type SourceFactory func(kind Kind, c Catalog) EventSource

// Registry mantiene un monitor por (usuario, tipo). Los monitores se crean on-demand.
type Registry struct {
	catalogs  Catalogs
	newSource SourceFactory
	opts      Options
	log       logger.Logger

	mu       sync.Mutex
	monitors map[key]*Monitor
}

// NewRegistry usa RandomSource si newSource es nil.
// opts.Period se ignora: cada monitor toma el período de su catálogo.
func NewRegistry(catalogs Catalogs, newSource SourceFactory, opts Options) *Registry {
	if catalogs == nil {
		catalogs = DefaultCatalogs()
	}
	if newSource == nil {
		newSource = func(kind Kind, c Catalog) EventSource {
			return NewRandomSource(kind, c, nil)
		}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		catalogs:  catalogs,
		newSource: newSource,
		opts:      opts,
		log:       log,
		monitors:  map[key]*Monitor{},
	}
}

func (r *Registry) Catalog(kind Kind) (Catalog, bool) {
	c, ok := r.catalogs[kind]
	return c, ok
}

// Get devuelve (creando si hace falta) el monitor del usuario para kind.
func (r *Registry) Get(userID string, kind Kind) (*Monitor, error) {
	userID = strings.TrimSpace(userID)
	c, ok := r.catalogs[kind]
	if !ok || userID == "" {
		return nil, ErrUnknownKind
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{userID: userID, kind: kind}
	if m, ok := r.monitors[k]; ok {
		return m, nil
	}

	opts := r.opts
	opts.Period = c.Period
	opts.Logger = r.log.With(map[string]any{"user_id": userID})

	m := NewMonitor(kind, c.Names(), r.newSource(kind, c), opts)
	r.monitors[k] = m
	return m, nil
}

// ActiveCount cuenta los monitores activos (para logs/health).
func (r *Registry) ActiveCount() int {
	n := 0
	for _, m := range r.snapshotList() {
		if m.State() == StateActive {
			n++
		}
	}
	return n
}

// StopOverdue detiene los monitores que llevan activos más de maxRuntime.
// Devuelve cuántos detuvo.
func (r *Registry) StopOverdue(maxRuntime time.Duration) int {
	if maxRuntime <= 0 {
		return 0
	}
	n := 0
	for _, m := range r.snapshotList() {
		if m.ActiveFor() > maxRuntime && m.Stop() {
			n++
		}
	}
	return n
}

// StopAll detiene todo (shutdown).
func (r *Registry) StopAll() {
	for _, m := range r.snapshotList() {
		m.Stop()
	}
}

func (r *Registry) snapshotList() []*Monitor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Monitor, 0, len(r.monitors))
	for _, m := range r.monitors {
		out = append(out, m)
	}
	return out
}
