package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"babysafety/internal/client/api"
	"babysafety/internal/client/guard"
	"babysafety/internal/client/session"
	"babysafety/internal/platform/logger"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080/api"

var errNotLoggedIn = errors.New(`not logged in: run "babycare login"`)

// run ejecuta el CLI y devuelve el exit code. Los errores de la API ya los
// mostró el notifier; el resto se imprime acá.
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !api.Notified(err) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app concentra las dependencias que comparten todos los comandos.
type app struct {
	out    io.Writer
	errOut io.Writer

	apiURL      string
	sessionFile string
	timeout     time.Duration
	logLevel    string

	log     logger.Logger
	client  *api.Client
	session *session.Store
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "babycare",
		Short: "Baby monitoring from the terminal",
		Long: `babycare talks to the baby safety API.

Log in once; the session is kept in your user config directory until you log out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiURL, "api", envOr("BABYCARE_API_URL", defaultAPIURL), "API base URL (env BABYCARE_API_URL)")
	pf.StringVar(&a.sessionFile, "session-file", os.Getenv("BABYCARE_SESSION_FILE"), "session file (default <config dir>/babycare/session.json)")
	pf.DurationVar(&a.timeout, "timeout", 10*time.Second, "HTTP timeout")
	pf.StringVar(&a.logLevel, "log-level", envOr("BABYCARE_LOG_LEVEL", "warn"), "debug|info|warn|error")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.dashboardCmd(),
		a.babyCmd(),
		a.feedingCmd(),
		a.monitorCmd(),
		a.cryCmd(),
	)
	return root
}

func (a *app) setup() error {
	a.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(a.logLevel),
		Format: logger.FormatText,
		App:    "babycare",
		Output: a.errOut,
	})

	path := a.sessionFile
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := session.Open(session.NewFileStorage(path))
	if err != nil {
		return err
	}
	a.session = store

	client, err := api.New(a.apiURL, a.timeout, api.WriterNotifier{W: a.errOut})
	if err != nil {
		return err
	}
	a.client = client

	a.log.Debug("cli ready", map[string]any{"api": a.apiURL, "session_file": path, "authenticated": store.IsAuthenticated()})
	return nil
}

// guarded envuelve un RunE con la decisión del guard para route.
// Sin sesión en ruta protegida => error; con sesión en /login o /register => dashboard.
func (a *app) guarded(route func(args []string) string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path := route(args)
		d := guard.Resolve(path, a.session.IsAuthenticated())
		if d.Redirected {
			a.log.Debug("route redirected", map[string]any{"from": path, "to": d.Target})
			switch d.Target {
			case guard.Login:
				return errNotLoggedIn
			case guard.Dashboard:
				u, _ := a.session.User()
				fmt.Fprintf(a.out, "Already logged in as %s.\n\n", u.Name)
				return a.runDashboard(cmd, nil)
			}
		}
		err := fn(cmd, args)
		if api.IsUnauthorized(err) && a.session.IsAuthenticated() {
			// token vencido o de otro server: la sesión local ya no sirve
			if lerr := a.session.Logout(); lerr != nil {
				a.log.Warn("clear session", map[string]any{"err": lerr})
			}
			fmt.Fprintln(a.errOut, `Session expired. Run "babycare login" again.`)
		}
		return err
	}
}

func at(route string) func([]string) string {
	return func([]string) string { return route }
}

func (a *app) token() string {
	return a.session.Token()
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
