// Package group implements plant group management, including the protected
// default group and the deletion cascade that reassigns member plants.
package group

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

type groupRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantGroup, error)
	List(ctx context.Context, filter domain.GroupFilter) ([]domain.GroupWithCount, error)
	CountLivingPlants(ctx context.Context, groupID uuid.UUID) (int, error)
	Create(ctx context.Context, name string) (*domain.PlantGroup, error)
	GetOrCreateDefault(ctx context.Context) (*domain.PlantGroup, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*domain.PlantGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type plantRepo interface {
	ReassignGroup(ctx context.Context, fromGroupID, toGroupID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides group operations.
type Service struct {
	groups groupRepo
	plants plantRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new Group service.
func NewService(log *slog.Logger, groups groupRepo, plants plantRepo, tx txManager) *Service {
	return &Service{
		groups: groups,
		plants: plants,
		tx:     tx,
		log:    log.With("service", "group"),
	}
}
