package babies

import (
	"context"
	"strings"
)

// Owned devuelve el bebé solo si pertenece a userID.
// Lo usan feedings y cryanalysis para no duplicar la regla de ownership.
func (s *Service) Owned(ctx context.Context, babyID, userID string) (Baby, error) {
	if strings.TrimSpace(userID) == "" {
		return Baby{}, ErrForbidden
	}
	b, err := s.GetByID(ctx, babyID)
	if err != nil {
		return Baby{}, err
	}
	if b.UserID != userID {
		return Baby{}, ErrForbidden
	}
	return b, nil
}
