package plant

import (
	"context"
	"fmt"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// ListPlants returns living plants joined with their groups, filtered by a
// substring search over plant and group names.
func (s *Service) ListPlants(ctx context.Context, input ListPlantsInput) ([]domain.PlantWithGroup, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.PlantFilter{
		GroupID:   input.GroupID,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	}
	if input.Search != "" {
		filter.Search = &input.Search
	}

	plants, err := s.plants.ListLiving(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}
