package postgres

import (
	"context"
	"database/sql"
	"errors"

	"babysafety/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, mobile_number, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, u.ID, u.Username, u.Email, u.MobileNumber, u.PasswordHash, u.CreatedAt)

	switch uniqueViolation(err) {
	case "":
		return err
	case "users_username_key":
		return users.ErrUsernameTaken
	case "users_email_key":
		return users.ErrEmailInUse
	default:
		return err
	}
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UsersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UsersRepo) getOne(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, mobile_number, password_hash, created_at
		FROM users `+where, arg)

	var u users.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.MobileNumber, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
