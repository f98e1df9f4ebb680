// Package config carga la configuración del servidor desde .env + variables de entorno.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"babysafety/internal/domain/monitoring"
)

type Config struct {
	Port  string
	DBDSN string // vacío = repos in-memory

	JWTSecret string // vacío = se genera uno efímero al arrancar
	JWTTTL    time.Duration
	DevAuth   bool // acepta X-Debug-User-ID en vez de Bearer

	AnalysisURL     string // vacío = solo reglas locales
	AnalysisTimeout time.Duration

	CatalogFile       string
	Catalogs          monitoring.Catalogs
	MonitorMaxRuntime time.Duration // 0 = sin límite
	MonitorSweep      string        // expresión cron del barrido

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee .env si existe (sin pisar variables ya definidas) y después el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv arma la Config usando getenv (inyectable en tests).
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{getenv: getenv}

	cfg := Config{
		Port:         e.get("PORT", "8080"),
		DBDSN:        e.get("DB_DSN", ""),
		JWTSecret:    e.get("JWT_SECRET", ""),
		DevAuth:      e.bool("DEV_AUTH"),
		AnalysisURL:  e.get("ANALYSIS_URL", ""),
		CatalogFile:  e.get("CATALOG_FILE", ""),
		MonitorSweep: e.get("MONITOR_SWEEP", "@every 1m"),
		LogLevel:     e.get("LOG_LEVEL", "info"),
		LogFormat:    e.get("LOG_FORMAT", "json"),
		AppName:      e.get("APP_NAME", "babysafety-api"),
	}

	cfg.JWTTTL = e.duration("JWT_TTL", 24*time.Hour)
	cfg.AnalysisTimeout = e.duration("ANALYSIS_TIMEOUT", 10*time.Second)
	cfg.MonitorMaxRuntime = e.duration("MONITOR_MAX_RUNTIME", 2*time.Hour)
	if e.err != nil {
		return Config{}, e.err
	}

	cats, err := monitoring.LoadCatalogs(cfg.CatalogFile)
	if err != nil {
		return Config{}, fmt.Errorf("config: CATALOG_FILE: %w", err)
	}
	cfg.Catalogs = cats

	return cfg, nil
}

// Addr devuelve ":PORT".
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

type env struct {
	getenv func(string) string
	err    error
}

func (e *env) get(k, def string) string {
	if v := strings.TrimSpace(e.getenv(k)); v != "" {
		return v
	}
	return def
}

func (e *env) bool(k string) bool {
	switch strings.ToLower(e.get(k, "")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (e *env) duration(k string, def time.Duration) time.Duration {
	raw := e.get(k, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if e.err == nil {
			e.err = fmt.Errorf("config: %s: invalid duration %q", k, raw)
		}
		return def
	}
	return d
}
