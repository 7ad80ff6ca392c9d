// Package auth implements registration, password login and token
// validation.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/config"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Service implements auth operations.
type Service struct {
	users userRepo
	jwt   jwtManager
	cfg   config.AuthConfig
	log   *slog.Logger
}

// NewService creates a new auth service instance.
func NewService(log *slog.Logger, users userRepo, jwt jwtManager, cfg config.AuthConfig) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
		cfg:   cfg,
		log:   log.With("service", "auth"),
	}
}

// AuthResult is what a successful registration or login returns.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}
