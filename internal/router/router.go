package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "babysafety/docs"
	mem "babysafety/internal/adapters/storage/memory"
	pg "babysafety/internal/adapters/storage/postgres"
	"babysafety/internal/domain/babies"
	"babysafety/internal/domain/cryanalysis"
	"babysafety/internal/domain/feedings"
	"babysafety/internal/domain/monitoring"
	"babysafety/internal/domain/users"
	"babysafety/internal/middleware"
	"babysafety/internal/platform/httpclient"
	"babysafety/internal/platform/httpjson"
	"babysafety/internal/platform/logger"
	"babysafety/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)
	TokenIssuer  auth.TokenIssuer  // requerido para /auth/login

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: se crea uno con catálogos por defecto si es nil.
	Monitors *monitoring.Registry

	// Vacío = análisis de llanto solo con reglas locales.
	AnalysisURL     string
	AnalysisTimeout time.Duration

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log))

	var (
		userRepo    users.Repository
		babyRepo    babies.Repository
		feedingRepo feedings.Repository
	)
	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		babyRepo = pg.NewBabiesRepo(opts.DB)
		feedingRepo = pg.NewFeedingsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		babyRepo = mem.NewBabyRepo()
		feedingRepo = mem.NewFeedingRepo()
	}
	// el historial de análisis vive solo en memoria
	cryRepo := mem.NewCryAnalysisRepo()

	monitors := opts.Monitors
	if monitors == nil {
		monitors = monitoring.NewRegistry(nil, nil, monitoring.Options{Logger: log})
	}

	var remote cryanalysis.Analyzer
	if opts.AnalysisURL != "" {
		remote = cryanalysis.NewRemoteAnalyzer(httpclient.New(opts.AnalysisTimeout), opts.AnalysisURL)
	}

	// Services por módulo. babies necesita a sus dependientes para el borrado en cascada,
	// y estos necesitan a babies para el ownership: se enlazan después de crearlos.
	usersSvc := users.NewService(userRepo, opts.TokenIssuer)
	babiesSvc := babies.NewService(babyRepo)
	feedingsSvc := feedings.NewService(feedingRepo, babiesSvc)
	crySvc := cryanalysis.NewService(cryRepo, babiesSvc, feedingsSvc, remote, log)
	babiesSvc.AddDependents(feedingsSvc, crySvc)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"activeMonitors": monitors.ActiveCount(),
		})
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc)
		babies.RegisterRoutes(api, babiesSvc,
			feedings.BabyRoutes(feedingsSvc),
			cryanalysis.BabyRoutes(crySvc),
		)
		feedings.RegisterRoutes(api, feedingsSvc)
		monitoring.RegisterRoutes(api, monitors)
	})

	return r
}
