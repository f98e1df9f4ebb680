package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"babysafety/internal/ports/auth"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "u1", Email: "a@b.co"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func serveWith(v auth.AuthVerifier, hdr map[string]string) (auth.Claims, bool) {
	var got auth.Claims
	var ok bool
	h := AuthContext(v, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, val := range hdr {
		req.Header.Set(k, val)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext(t *testing.T) {
	c, ok := serveWith(stubVerifier{}, map[string]string{"Authorization": "Bearer good"})
	assert.True(t, ok)
	assert.Equal(t, "u1", c.UserID)

	_, ok = serveWith(stubVerifier{}, map[string]string{"Authorization": "Bearer bad"})
	assert.False(t, ok)

	_, ok = serveWith(stubVerifier{}, map[string]string{"Authorization": "Basic good"})
	assert.False(t, ok)

	// con verifier, el header de debug se ignora
	_, ok = serveWith(stubVerifier{}, map[string]string{"X-Debug-User-ID": "u9"})
	assert.False(t, ok)

	c, ok = serveWith(nil, map[string]string{"X-Debug-User-ID": "u9", "X-Debug-Email": "dev@local"})
	assert.True(t, ok)
	assert.Equal(t, "u9", c.UserID)
	assert.Equal(t, "dev@local", c.Email)

	// en modo dev el Bearer no significa nada
	_, ok = serveWith(nil, map[string]string{"Authorization": "Bearer good"})
	assert.False(t, ok)
}

func TestRequireUser(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := RequireUser(rec, req)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u1"}))
	uid, ok := RequireUser(rec, req)
	assert.True(t, ok)
	assert.Equal(t, "u1", uid)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Token abc"))
	assert.Equal(t, "", bearerToken(""))
}
