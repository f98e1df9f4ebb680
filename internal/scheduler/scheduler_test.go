package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"babysafety/internal/domain/monitoring"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualTicker struct{ c chan time.Time }

func (t manualTicker) C() <-chan time.Time { return t.c }
func (t manualTicker) Stop()               {}

func TestSweep_StopsOverdueMonitors(t *testing.T) {
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	reg := monitoring.NewRegistry(nil, nil, monitoring.Options{
		Now:       func() time.Time { return clock() },
		NewTicker: func(time.Duration) monitoring.Ticker { return manualTicker{c: make(chan time.Time)} },
	})
	defer reg.StopAll()

	m, err := reg.Get("u1", monitoring.KindObject)
	require.NoError(t, err)
	require.True(t, m.Start())

	s := &Service{Registry: reg, MaxRuntime: time.Hour}
	assert.Equal(t, 0, s.Sweep())

	later := now.Add(2 * time.Hour)
	clock = func() time.Time { return later }
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, monitoring.StateIdle, m.State())

	// sin límite no toca nada
	assert.Equal(t, 0, (&Service{Registry: reg}).Sweep())
}

func TestRun_StopsWithContext(t *testing.T) {
	s := &Service{Registry: monitoring.NewRegistry(nil, nil, monitoring.Options{}), MaxRuntime: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	_, err := (&Service{Spec: "not a spec"}).Start()
	assert.Error(t, err)
}
