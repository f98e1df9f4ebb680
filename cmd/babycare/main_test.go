package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"babysafety/internal/adapters/auth/jwtauth"
	"babysafety/internal/client/guard"
	"babysafety/internal/domain/monitoring"
	"babysafety/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t           *testing.T
	apiURL      string
	sessionFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithSecret(t, "cli-test")
}

func newHarnessWithSecret(t *testing.T, secret string) *harness {
	t.Helper()

	jm, err := jwtauth.New(jwtauth.Config{Secret: secret, TTL: time.Hour})
	require.NoError(t, err)

	reg := monitoring.NewRegistry(nil, nil, monitoring.Options{})
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: jm,
		TokenIssuer:  jm,
		Monitors:     reg,
	}))
	t.Cleanup(func() {
		ts.Close()
		reg.StopAll()
	})

	return &harness{
		t:           t,
		apiURL:      ts.URL + "/api",
		sessionFile: filepath.Join(t.TempDir(), "babycare", "session.json"),
	}
}

func (h *harness) run(args ...string) (string, string, int) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--api", h.apiURL, "--session-file", h.sessionFile}, args...)
	code := run(context.Background(), full, &out, &errOut)
	return out.String(), errOut.String(), code
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, errOut, code := h.run(args...)
	require.Equal(h.t, 0, code, "args=%v stderr=%s", args, errOut)
	return out
}

func (h *harness) registerAndLogin() {
	h.t.Helper()
	h.mustRun("register", "--username", "ana", "--email", "ana@example.com", "--password", "secret1", "--mobile", "5551234567")
	h.mustRun("login", "--email", "ana@example.com", "--password", "secret1")
}

func firstColumnValue(t *testing.T, out, header string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2, out)
	require.True(t, strings.HasPrefix(lines[0], header), out)
	return strings.Fields(lines[1])[0]
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{
		{"dashboard"},
		{"baby", "list"},
		{"feeding", "today", "b1"},
		{"monitor", "status", "emotion"},
		{"cry", "history", "b1"},
	} {
		_, errOut, code := h.run(args...)
		assert.Equal(t, 1, code, args)
		assert.Contains(t, errOut, "not logged in", args)
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("register", "--username", "ana", "--email", "ana@example.com", "--password", "secret1", "--mobile", "5551234567")
	assert.Contains(t, out, "Account created")

	_, errOut, code := h.run("register", "--username", "ana", "--email", "other@example.com", "--password", "secret1", "--mobile", "5551234567")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: Username is already taken!")

	_, errOut, code = h.run("login", "--email", "ana@example.com", "--password", "wrong12")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Invalid email or password")
	_, err := os.Stat(h.sessionFile)
	assert.True(t, os.IsNotExist(err), "failed login must not create a session")

	out = h.mustRun("login", "--email", "ana@example.com", "--password", "secret1")
	assert.Contains(t, out, "Welcome, ana.")

	raw, err := os.ReadFile(h.sessionFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user"`)
	assert.Contains(t, string(raw), `"token"`)

	// con sesión, login redirige al dashboard
	out = h.mustRun("login", "--email", "ana@example.com", "--password", "secret1")
	assert.Contains(t, out, "Already logged in as ana.")
	assert.Contains(t, out, "Dashboard for ana")

	assert.Contains(t, h.mustRun("logout"), "Logged out.")
	assert.Contains(t, h.mustRun("logout"), "Not logged in.")
	_, _, code = h.run("dashboard")
	assert.Equal(t, 1, code)
}

func TestMissingFlagsFailBeforeNetwork(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{
		"--api", "http://127.0.0.1:1/api",
		"--session-file", filepath.Join(t.TempDir(), "s.json"),
		"register", "--username", "ana",
	}, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "required flag")
	assert.NotContains(t, errOut.String(), "do request")
}

func TestBabyFeedingCryFlow(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	now := time.Now()
	birth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -6, 0)

	out := h.mustRun("baby", "add", "--name", "Lucía", "--birth-date", birth.Format("2006-01-02"), "--gender", "female")
	assert.Contains(t, out, "Lucía (6 months)")

	out = h.mustRun("baby", "list")
	babyID := firstColumnValue(t, out, "ID")
	assert.Contains(t, out, "Lucía")

	_, errOut, code := h.run("feeding", "add", "--baby", babyID, "--time", "7:5", "--food", "formula", "--amount", "120ml")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)

	h.mustRun("feeding", "add", "--baby", babyID, "--time", "08:00", "--food", "formula", "--amount", "120ml")
	h.mustRun("feeding", "add", "--baby", babyID, "--time", "11:30", "--food", "breast milk", "--amount", "90ml")

	out = h.mustRun("feeding", "today", babyID)
	assert.Contains(t, out, "Total feeds: 2")
	assert.Contains(t, out, "Last feed:   11:30")
	assert.Contains(t, out, "Next feed:   14:30")

	out = h.mustRun("feeding", "list", babyID)
	entryID := firstColumnValue(t, out, "ID")
	h.mustRun("feeding", "delete", babyID, entryID)
	assert.Contains(t, h.mustRun("feeding", "today", babyID), "Total feeds: 1")

	out = h.mustRun("cry", "analyze", babyID, "--room-temp", "15", "--food-temp", "50")
	assert.Contains(t, out, "Reason:")
	assert.Contains(t, out, "rules")
	assert.Contains(t, out, "Food may be too hot - check temperature")
	assert.Contains(t, out, "Feeding:        not suitable")
	assert.Contains(t, out, "Consider adjusting feeding conditions before proceeding")
	assert.Contains(t, h.mustRun("cry", "history", babyID), "rules")

	out = h.mustRun("dashboard")
	assert.Contains(t, out, "Lucía")
	assert.Contains(t, out, "object   monitor: idle, safe")

	h.mustRun("baby", "delete", babyID)
	assert.Contains(t, h.mustRun("baby", "list"), "No babies yet.")
}

func TestMonitorCommands(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	assert.Contains(t, h.mustRun("monitor", "start", "object"), "object monitor: active")
	assert.Contains(t, h.mustRun("monitor", "start", "object"), "already active")
	assert.Contains(t, h.mustRun("monitor", "status", "object"), "object monitor: active")
	assert.Contains(t, h.mustRun("monitor", "watch", "object", "--count", "1"), "monitor active")
	assert.Contains(t, h.mustRun("monitor", "emergency", "emotion"), "simulated")
	assert.Contains(t, h.mustRun("monitor", "stop", "object"), "object monitor: idle")

	_, errOut, code := h.run("monitor", "start", "audio")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}

func TestLoginStoresSessionRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1,"username":"Ann","email":"a@b.com","token":"T","type":"Bearer"}`))
	}))
	defer srv.Close()

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{
		"--api", srv.URL + "/api", "--session-file", sessionFile,
		"login", "--email", "a@b.com", "--password", "x",
	}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	raw, err := os.ReadFile(sessionFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"id":"1","name":"Ann","email":"a@b.com","token":"T"}}`, string(raw))

	d := guard.Resolve(guard.Login, true)
	assert.Equal(t, guard.Dashboard, d.Target)
}

func TestRejectedTokenClearsSession(t *testing.T) {
	h := newHarness(t)
	h.registerAndLogin()

	// otro server (otro secreto) con la misma sesión => 401
	other := newHarnessWithSecret(t, "other-secret")
	other.sessionFile = h.sessionFile

	_, errOut, code := other.run("baby", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `Session expired. Run "babycare login" again.`)

	_, errOut, code = h.run("baby", "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not logged in")
}
