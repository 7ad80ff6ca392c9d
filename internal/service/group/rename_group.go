package group

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// RenameGroup changes a group's name. The default group keeps its name
// forever; renaming it would let a second default appear on the next
// lazy creation.
func (s *Service) RenameGroup(ctx context.Context, input RenameGroupInput) (*domain.PlantGroup, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.groups.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if current.IsDefault() {
		return nil, fmt.Errorf("rename %q: %w", current.Name, domain.ErrProtectedGroup)
	}

	group, err := s.groups.Rename(ctx, input.ID, strings.TrimSpace(input.Name))
	if err != nil {
		return nil, fmt.Errorf("rename group: %w", err)
	}

	s.log.InfoContext(ctx, "group renamed", "id", group.ID, "name", group.Name)
	return group, nil
}
