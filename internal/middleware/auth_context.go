package middleware

import (
	"context"
	"net/http"
	"strings"

	"babysafety/internal/platform/httpjson"
	"babysafety/internal/platform/logger"
	"babysafety/internal/ports/auth"
)

type claimsKey struct{}

// Headers del modo dev (sin verifier).
const (
	DebugUserHeader  = "X-Debug-User-ID"
	DebugEmailHeader = "X-Debug-Email"
)

// AuthContext resuelve las claims del request sin cortarlo; cada handler
// decide si exige sesión (ver RequireUser).
//   - verifier != nil: Bearer token verificado. Un token inválido se loguea y se ignora.
//   - verifier == nil: modo dev, se confía en X-Debug-User-ID.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolveClaims(r, verifier, log)
			if ok {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveClaims(r *http.Request, verifier auth.AuthVerifier, log logger.Logger) (auth.Claims, bool) {
	if verifier == nil {
		uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
		if uid == "" {
			return auth.Claims{}, false
		}
		return auth.Claims{UserID: uid, Email: strings.TrimSpace(r.Header.Get(DebugEmailHeader))}, true
	}

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		log.Debug("bearer token rejected", map[string]any{"path": r.URL.Path, "err": err})
		return auth.Claims{}, false
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, false
	}
	return claims, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

// RequireUser devuelve el user id del request o responde 401.
func RequireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, ok := GetClaims(r.Context())
	if !ok || strings.TrimSpace(c.UserID) == "" {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return c.UserID, true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
