// Package api es el SDK del CLI contra la API REST. Cada llamada notifica
// éxito/error al usuario y siempre devuelve el error al caller.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"babysafety/internal/platform/httpclient"
)

// FallbackMessage se muestra cuando no hay mensaje del server ni del transporte.
const FallbackMessage = "Something went wrong"

// Notifier muestra mensajes al usuario (toast en la web, stderr en el CLI).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// WriterNotifier escribe "✓ msg" / "✗ msg" en W.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Success(msg string) { fmt.Fprintf(n.W, "✓ %s\n", msg) }
func (n WriterNotifier) Error(msg string)   { fmt.Fprintf(n.W, "✗ %s\n", msg) }

type Client struct {
	http     *httpclient.Client
	notifier Notifier
}

// New arma el cliente sobre baseURL (p.ej. http://localhost:8080/api).
// notifier nil => no se notifica nada.
func New(baseURL string, timeout time.Duration, notifier Notifier) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("api: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	hc.Header = map[string]string{"User-Agent": "babycare-cli"}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Client{http: hc, notifier: notifier}, nil
}

func (c *Client) Get(ctx context.Context, path string, payload any, successMsg, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, payload, successMsg, token, out)
}

func (c *Client) Post(ctx context.Context, path string, payload any, successMsg, token string, out any) error {
	return c.do(ctx, http.MethodPost, path, payload, successMsg, token, out)
}

func (c *Client) Put(ctx context.Context, path string, payload any, successMsg, token string, out any) error {
	return c.do(ctx, http.MethodPut, path, payload, successMsg, token, out)
}

func (c *Client) Delete(ctx context.Context, path string, payload any, successMsg, token string, out any) error {
	return c.do(ctx, http.MethodDelete, path, payload, successMsg, token, out)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, successMsg, token string, out any) error {
	err := c.http.DoJSON(ctx, method, path, httpclient.Bearer(token), payload, out)
	if err != nil {
		c.notifier.Error(ErrorMessage(err))
		return &notifiedError{err: err}
	}
	if successMsg != "" {
		c.notifier.Success(successMsg)
	}
	return nil
}

// ErrorMessage elige qué mostrar: mensaje del server, status HTTP, texto del
// error de transporte, o FallbackMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := httpclient.ServerMessage(err); ok {
		return msg
	}
	if code := StatusCode(err); code != 0 {
		return fmt.Sprintf("Request failed with status code %d", code)
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}
