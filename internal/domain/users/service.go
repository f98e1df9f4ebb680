package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"babysafety/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const TokenType = "Bearer"

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	now    func() time.Time
	cost   int
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

type SignupInput struct {
	Username     string
	Email        string
	Password     string
	MobileNumber string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)

	if err := validateSignup(in); err != nil {
		return User{}, err
	}

	taken, err := s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, ErrUsernameTaken
	}

	inUse, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return User{}, err
	}
	if inUse {
		return User{}, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// LoginResult es lo que el cliente guarda como sesión.
type LoginResult struct {
	Token     string
	Type      string
	ExpiresAt time.Time
	User      User
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, Type: TokenType, ExpiresAt: exp, User: u}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func validateSignup(in SignupInput) error {
	if n := utf8.RuneCountInString(in.Username); n < 3 || n > 20 {
		return fmt.Errorf("%w: username must be between 3 and 20 characters", ErrInvalidInput)
	}
	if in.Email == "" || len(in.Email) > 50 {
		return fmt.Errorf("%w: email must be between 1 and 50 characters", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(in.Password); n < 6 || n > 40 {
		return fmt.Errorf("%w: password must be between 6 and 40 characters", ErrInvalidInput)
	}
	if n := len(in.MobileNumber); n < 10 || n > 15 {
		return fmt.Errorf("%w: mobile number must be between 10 and 15 characters", ErrInvalidInput)
	}
	return nil
}
