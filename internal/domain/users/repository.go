package users

import "context"

// Repository: Create debe devolver ErrUsernameTaken / ErrEmailInUse si choca
// con un usuario existente (además del chequeo previo del service).
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
