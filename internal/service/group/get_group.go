package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// GetGroup returns one group with its living-plant count.
func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*domain.GroupWithCount, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	count, err := s.groups.CountLivingPlants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count living plants: %w", err)
	}

	return &domain.GroupWithCount{PlantGroup: *group, LivingPlants: count}, nil
}

// ListGroups returns all groups with their living-plant counts.
func (s *Service) ListGroups(ctx context.Context, input ListGroupsInput) ([]domain.GroupWithCount, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	groups, err := s.groups.List(ctx, domain.GroupFilter{
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
