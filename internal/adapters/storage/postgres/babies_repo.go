package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"babysafety/internal/domain/babies"
)

type BabiesRepo struct {
	db *sql.DB
}

func NewBabiesRepo(db *sql.DB) *BabiesRepo {
	return &BabiesRepo{db: db}
}

const babyColumns = `
	id, user_id, name, birth_date, gender,
	weight, height, health_issues, allergies, notes,
	age_in_months, created_at, updated_at`

func (r *BabiesRepo) Create(ctx context.Context, b babies.Baby) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO babies (`+babyColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		b.ID, b.UserID, b.Name, b.BirthDate, b.Gender,
		b.Weight, b.Height, b.HealthIssues, b.Allergies, b.Notes,
		b.AgeInMonths, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *BabiesRepo) Update(ctx context.Context, b babies.Baby) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE babies
		SET
			name = $2,
			birth_date = $3,
			gender = $4,
			weight = $5,
			height = $6,
			health_issues = $7,
			allergies = $8,
			notes = $9,
			age_in_months = $10,
			updated_at = $11
		WHERE id = $1
	`,
		b.ID, b.Name, b.BirthDate, b.Gender, b.Weight, b.Height,
		b.HealthIssues, b.Allergies, b.Notes, b.AgeInMonths, b.UpdatedAt,
	)
	return affected(res, err, babies.ErrNotFound)
}

func (r *BabiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM babies WHERE id = $1`, id)
	return affected(res, err, babies.ErrNotFound)
}

func (r *BabiesRepo) GetByID(ctx context.Context, id string) (babies.Baby, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return babies.Baby{}, babies.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+babyColumns+` FROM babies WHERE id = $1`, id)
	b, err := scanBaby(row)
	if errors.Is(err, sql.ErrNoRows) {
		return babies.Baby{}, babies.ErrNotFound
	}
	return b, err
}

func (r *BabiesRepo) ListByUser(ctx context.Context, userID string) ([]babies.Baby, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+babyColumns+`
		FROM babies
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]babies.Baby, 0)
	for rows.Next() {
		b, err := scanBaby(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBaby(s scanner) (babies.Baby, error) {
	var b babies.Baby
	err := s.Scan(
		&b.ID, &b.UserID, &b.Name, &b.BirthDate, &b.Gender,
		&b.Weight, &b.Height, &b.HealthIssues, &b.Allergies, &b.Notes,
		&b.AgeInMonths, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func affected(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notFound
	}
	return nil
}
