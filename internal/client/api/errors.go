package api

import (
	"errors"
	"net/http"

	"babysafety/internal/platform/httpclient"
)

// notifiedError marca un error que ya se mostró vía Notifier.
type notifiedError struct {
	err error
}

func (e *notifiedError) Error() string { return e.err.Error() }
func (e *notifiedError) Unwrap() error { return e.err }

// Notified indica que el usuario ya vio este error; el caller no debe repetirlo.
func Notified(err error) bool {
	var ne *notifiedError
	return errors.As(err, &ne)
}

// StatusCode devuelve el status HTTP del error, o 0 si no vino del server.
func StatusCode(err error) int {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// IsUnauthorized indica un token rechazado (sesión vencida o inválida).
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
