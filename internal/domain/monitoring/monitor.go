package monitoring

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"babysafety/internal/platform/logger"
	"babysafety/internal/stats"
)

var (
	ErrUnknownKind = errors.New("unknown monitor kind")
)

// DefaultAlertHold: tiempo que la alerta queda activa tras una detección peligrosa.
const DefaultAlertHold = 5 * time.Second

type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

type AlertStatus string

const (
	AlertSafe  AlertStatus = "safe"
	AlertAlarm AlertStatus = "alert"
)

// Ticker abstrae time.Ticker para poder manejar los ticks desde tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

type Options struct {
	Period      time.Duration
	AlertHold   time.Duration
	HistorySize int

	Now       func() time.Time
	NewTicker func(time.Duration) Ticker
	Logger    logger.Logger
}

// Monitor es la máquina Idle -> Active -> Idle de un generador de eventos.
// Mientras está activo hay exactamente una goroutine con un ticker; cada tick
// se aplica completo bajo mu.
type Monitor struct {
	kind       Kind
	categories []string
	source     EventSource

	period    time.Duration
	alertHold time.Duration
	now       func() time.Time
	newTicker func(time.Duration) Ticker
	log       logger.Logger

	mu         sync.Mutex
	state      State
	gen        uint64
	startedAt  time.Time
	history    *History
	alertUntil time.Time
	alertEvent *Event
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewMonitor(kind Kind, categories []string, source EventSource, opts Options) *Monitor {
	m := &Monitor{
		kind:       kind,
		categories: categories,
		source:     source,
		period:     opts.Period,
		alertHold:  opts.AlertHold,
		now:        opts.Now,
		newTicker:  opts.NewTicker,
		log:        opts.Logger,
		state:      StateIdle,
		history:    NewHistory(opts.HistorySize),
	}
	if m.period <= 0 {
		m.period = 2 * time.Second
	}
	if m.alertHold <= 0 {
		m.alertHold = DefaultAlertHold
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newTicker == nil {
		m.newTicker = NewStdTicker
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	m.log = m.log.With(map[string]any{"monitor": string(kind)})
	return m
}

func (m *Monitor) Kind() Kind { return m.kind }

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start pasa a Active. Si ya estaba activo no hace nada y devuelve false.
func (m *Monitor) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateActive {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.gen++
	m.state = StateActive
	m.startedAt = m.now()
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(ctx, m.gen, m.newTicker(m.period), m.done)

	m.log.Info("monitor started", map[string]any{"period": m.period.String()})
	return true
}

// Stop pasa a Idle, cancela el ticker y espera a que la goroutine termine.
// Devuelve false si ya estaba inactivo.
func (m *Monitor) Stop() bool {
	m.mu.Lock()
	if m.state != StateActive {
		m.mu.Unlock()
		return false
	}
	m.state = StateIdle
	m.startedAt = time.Time{}
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	cancel()
	<-done

	m.log.Info("monitor stopped", nil)
	return true
}

func (m *Monitor) run(ctx context.Context, gen uint64, t Ticker, done chan struct{}) {
	defer close(done)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			m.tick(gen)
		}
	}
}

func (m *Monitor) tick(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// un tick que llega después de Stop (o de un reinicio) se descarta
	if m.state != StateActive || m.gen != gen {
		return
	}

	now := m.now()
	e := m.source.Next(now)
	m.history.Push(e)

	if e.Hazardous {
		// la alerta se reinicia con cada detección peligrosa y vuelve sola a "safe"
		m.alertUntil = now.Add(m.alertHold)
		ev := e
		m.alertEvent = &ev
		m.log.Warn("hazard detected", map[string]any{
			"category":   e.Category,
			"confidence": e.Confidence,
			"reason":     e.Reason,
		})
	}
}

// Snapshot es la vista derivada del monitor en un instante.
type Snapshot struct {
	Kind       Kind          `json:"kind"`
	State      State         `json:"state"`
	Alert      AlertStatus   `json:"alert"`
	AlertEvent *Event        `json:"alertEvent,omitempty"`
	StartedAt  *time.Time    `json:"startedAt,omitempty"`
	Latest     *Event        `json:"latest,omitempty"`
	History    []Event       `json:"history"`
	Tally      []stats.Count `json:"tally"`
}

func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := Snapshot{
		Kind:    m.kind,
		State:   m.state,
		Alert:   m.alertAt(now),
		History: m.history.Items(),
		Tally:   stats.Tally(m.history.Categories(), m.categories),
	}
	if s.Alert == AlertAlarm && m.alertEvent != nil {
		ev := *m.alertEvent
		s.AlertEvent = &ev
	}
	if !m.startedAt.IsZero() {
		t := m.startedAt
		s.StartedAt = &t
	}
	if e, ok := m.history.Latest(); ok {
		s.Latest = &e
	}
	return s
}

// AlertStatus se deriva del reloj: no hace falta ningún timer para volver a "safe".
func (m *Monitor) AlertStatus() AlertStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alertAt(m.now())
}

func (m *Monitor) alertAt(now time.Time) AlertStatus {
	if now.Before(m.alertUntil) {
		return AlertAlarm
	}
	return AlertSafe
}

// ActiveFor devuelve cuánto lleva activo; 0 si está inactivo.
func (m *Monitor) ActiveFor() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return 0
	}
	return m.now().Sub(m.startedAt)
}

// Acknowledgement es la respuesta a una acción de emergencia.
type Acknowledgement struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Emergency solo confirma la solicitud; no se despacha nada a ningún servicio.
func (m *Monitor) Emergency() Acknowledgement {
	ack := Acknowledgement{
		ID:      uuid.NewString(),
		Kind:    m.kind,
		Message: "Emergency request acknowledged (simulated, no call placed)",
		At:      m.now(),
	}
	m.log.Warn("emergency requested", map[string]any{"ack_id": ack.ID})
	return ack
}
