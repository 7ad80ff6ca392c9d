package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// ValidateToken checks a bearer token and returns the user ID and role it
// carries. The user is not loaded; a deleted account stays valid until the
// token expires.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}
