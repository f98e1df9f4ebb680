package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL,
	mobile_number TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	CONSTRAINT users_username_key UNIQUE (username),
	CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS babies (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	birth_date    DATE NOT NULL,
	gender        TEXT NOT NULL DEFAULT '',
	weight        TEXT NOT NULL DEFAULT '',
	height        TEXT NOT NULL DEFAULT '',
	health_issues TEXT NOT NULL DEFAULT '',
	allergies     TEXT NOT NULL DEFAULT '',
	notes         TEXT NOT NULL DEFAULT '',
	age_in_months INT  NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS babies_user_id_idx ON babies (user_id, created_at);

CREATE TABLE IF NOT EXISTS feedings (
	id         TEXT PRIMARY KEY,
	baby_id    TEXT NOT NULL REFERENCES babies(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	feed_time  TEXT NOT NULL,
	feed_date  TEXT NOT NULL,
	food_type  TEXT NOT NULL,
	amount     TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS feedings_baby_idx ON feedings (baby_id, feed_date, feed_time);
`

// Migrate crea las tablas si no existen. Idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

// uniqueViolation devuelve el constraint violado (23505) o "".
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}
