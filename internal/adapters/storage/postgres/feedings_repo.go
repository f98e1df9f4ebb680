package postgres

import (
	"context"
	"database/sql"
	"errors"

	"babysafety/internal/domain/feedings"
)

type FeedingsRepo struct {
	db *sql.DB
}

func NewFeedingsRepo(db *sql.DB) *FeedingsRepo {
	return &FeedingsRepo{db: db}
}

const feedingColumns = `id, baby_id, user_id, feed_time, feed_date, food_type, amount, notes, created_at`

func (r *FeedingsRepo) Create(ctx context.Context, e feedings.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedings (`+feedingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, e.ID, e.BabyID, e.UserID, e.Time, e.Date, e.FoodType, e.Amount, e.Notes, e.CreatedAt)
	return err
}

func (r *FeedingsRepo) GetByID(ctx context.Context, id string) (feedings.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedingColumns+` FROM feedings WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return feedings.Entry{}, feedings.ErrNotFound
	}
	return e, err
}

func (r *FeedingsRepo) ListByBaby(ctx context.Context, babyID string) ([]feedings.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+feedingColumns+`
		FROM feedings
		WHERE baby_id = $1
		ORDER BY feed_date ASC, feed_time ASC, created_at ASC
	`, babyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedings.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *FeedingsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feedings WHERE id = $1`, id)
	return affected(res, err, feedings.ErrNotFound)
}

// DeleteByBaby: con ON DELETE CASCADE normalmente ya no queda nada.
func (r *FeedingsRepo) DeleteByBaby(ctx context.Context, babyID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedings WHERE baby_id = $1`, babyID)
	return err
}

func scanEntry(s scanner) (feedings.Entry, error) {
	var e feedings.Entry
	err := s.Scan(&e.ID, &e.BabyID, &e.UserID, &e.Time, &e.Date, &e.FoodType, &e.Amount, &e.Notes, &e.CreatedAt)
	return e, err
}
