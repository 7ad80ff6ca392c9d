package group

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// CreateGroup adds a new group. Names are unique case-insensitively, so
// "Kitchen" and "kitchen" collide.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.PlantGroup, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	group, err := s.groups.Create(ctx, strings.TrimSpace(input.Name))
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.InfoContext(ctx, "group created", "id", group.ID, "name", group.Name)
	return group, nil
}
