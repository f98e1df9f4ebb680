// Package session guarda el usuario autenticado del CLI. El token se
// considera válido hasta Logout (no hay expiración ni refresh del lado cliente).
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const userKey = "user"

var ErrInvalidUser = errors.New("session: user requires id and token")

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type Store struct {
	storage Storage

	mu   sync.RWMutex
	user *User
}

// Open lee el usuario persistido, si existe. Un registro ilegible se
// descarta y se borra (queda sin sesión).
func Open(storage Storage) (*Store, error) {
	s := &Store{storage: storage}

	raw, ok, err := storage.Get(userKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil || u.valid() != nil {
		if derr := storage.Delete(userKey); derr != nil {
			return nil, derr
		}
		return s, nil
	}
	s.user = &u
	return s, nil
}

func (s *Store) Login(u User) error {
	if err := u.valid(); err != nil {
		return err
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	// Se persiste primero: si falla, el estado en memoria no cambia.
	if err := s.storage.Set(userKey, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

func (s *Store) Logout() error {
	if err := s.storage.Delete(userKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// Token devuelve "" si no hay sesión.
func (s *Store) Token() string {
	u, _ := s.User()
	return u.Token
}

func (u User) valid() error {
	if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Token) == "" {
		return ErrInvalidUser
	}
	return nil
}
