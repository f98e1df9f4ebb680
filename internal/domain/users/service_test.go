package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	for _, x := range r.byID {
		if x.Username == u.Username {
			return ErrUsernameTaken
		}
		if x.Email == u.Email {
			return ErrEmailInUse
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

type stubIssuer struct{ issued []string }

func (s *stubIssuer) Issue(userID, email string) (string, time.Time, error) {
	s.issued = append(s.issued, userID)
	return "tok-" + userID, time.Time{}, nil
}

func newTestService() (*Service, *testRepo, *stubIssuer) {
	repo := newTestRepo()
	iss := &stubIssuer{}
	svc := NewService(repo, iss)
	svc.cost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC) }
	return svc, repo, iss
}

func validSignup() SignupInput {
	return SignupInput{
		Username:     "ana",
		Email:        "Ana@Example.com ",
		Password:     "secret1",
		MobileNumber: "5551234567",
	}
}

// -------------------------
// Tests
// -------------------------

func TestSignup_HashesAndNormalizes(t *testing.T) {
	svc, repo, _ := newTestService()

	u, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
	assert.Len(t, repo.byID, 1)
}

func TestSignup_Validation(t *testing.T) {
	cases := map[string]func(*SignupInput){
		"short username":  func(in *SignupInput) { in.Username = "ab" },
		"long username":   func(in *SignupInput) { in.Username = strings.Repeat("a", 21) },
		"bad email":       func(in *SignupInput) { in.Email = "not-an-email" },
		"long email":      func(in *SignupInput) { in.Email = strings.Repeat("a", 45) + "@x.com" },
		"short password":  func(in *SignupInput) { in.Password = "12345" },
		"long password":   func(in *SignupInput) { in.Password = strings.Repeat("p", 41) },
		"short mobile":    func(in *SignupInput) { in.MobileNumber = "123" },
		"long mobile":     func(in *SignupInput) { in.MobileNumber = strings.Repeat("1", 16) },
		"display address": func(in *SignupInput) { in.Email = "Ana <ana@example.com>" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			in := validSignup()
			mutate(&in)
			_, err := svc.Signup(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestSignup_Duplicates(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	dupUser := validSignup()
	dupUser.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), dupUser)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	dupEmail := validSignup()
	dupEmail.Username = "bruno"
	dupEmail.Email = "ANA@example.com"
	_, err = svc.Signup(context.Background(), dupEmail)
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin(t *testing.T) {
	svc, _, iss := newTestService()
	u, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), " ana@EXAMPLE.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-"+u.ID, res.Token)
	assert.Equal(t, "Bearer", res.Type)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, []string{u.ID}, iss.issued)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong!!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
