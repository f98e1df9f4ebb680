// Package httpjson reúne los helpers JSON que antes estaban duplicados en cada handler.
// Todas las respuestas de error llevan {"message": "..."} para que el cliente pueda mostrarlo.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrorBody es el cuerpo estándar de error.
type ErrorBody struct {
	Message string `json:"message"`
}

// MessageBody se usa para respuestas que solo informan algo (p.ej. signup).
type MessageBody struct {
	Message string `json:"message"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Message: msg})
}

// Decode lee un body JSON. Body vacío => error.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("invalid json: empty body")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("invalid json: empty body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// DecodeOptional acepta body vacío (dst queda con sus defaults).
func DecodeOptional(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
