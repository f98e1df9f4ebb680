package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"babysafety/internal/adapters/auth/jwtauth"
	pg "babysafety/internal/adapters/storage/postgres"
	"babysafety/internal/domain/monitoring"
	"babysafety/internal/platform/config"
	"babysafety/internal/platform/logger"
	"babysafety/internal/ports/auth"
	"babysafety/internal/router"
	"babysafety/internal/scheduler"

	"golang.org/x/sync/errgroup"
)

// @title BabySafety API
// @version 1.0
// @description Perfiles de bebés, tomas, monitores simulados y análisis de llanto.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// sin logger todavía
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	err = run(cfg, log)
	if err != nil {
		log.Error("server exited", map[string]any{"err": err})
	}
	// stderr puede no soportar fsync; se ignora
	_ = logger.Sync(log)
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer opened.Close()
		if err := pg.Migrate(ctx, opened); err != nil {
			return err
		}
		db = opened
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = ephemeralSecret()
		log.Warn("JWT_SECRET not set, tokens will not survive a restart", nil)
	}
	tokens, err := jwtauth.New(jwtauth.Config{Secret: secret, TTL: cfg.JWTTTL, Issuer: cfg.AppName})
	if err != nil {
		return err
	}

	var verifier auth.AuthVerifier = tokens
	if cfg.DevAuth {
		verifier = nil
		log.Warn("DEV_AUTH enabled, X-Debug-User-ID is trusted", nil)
	}

	monitors := monitoring.NewRegistry(cfg.Catalogs, nil, monitoring.Options{Logger: log})
	defer monitors.StopAll()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier:    verifier,
			TokenIssuer:     tokens,
			DB:              db,
			Monitors:        monitors,
			AnalysisURL:     cfg.AnalysisURL,
			AnalysisTimeout: cfg.AnalysisTimeout,
			Logger:          log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	sched := &scheduler.Service{
		Registry:   monitors,
		MaxRuntime: cfg.MonitorMaxRuntime,
		Spec:       cfg.MonitorSweep,
		Log:        log,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sched.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func ephemeralSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
