package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// DeleteGroup removes a group after moving its plants, dead ones included,
// into the default group. The default group itself cannot be deleted.
func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get group: %w", err)
	}
	if group.IsDefault() {
		return fmt.Errorf("delete %q: %w", group.Name, domain.ErrProtectedGroup)
	}

	var moved int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		fallback, err := s.groups.GetOrCreateDefault(ctx)
		if err != nil {
			return fmt.Errorf("get or create default group: %w", err)
		}

		moved, err = s.plants.ReassignGroup(ctx, id, fallback.ID)
		if err != nil {
			return fmt.Errorf("reassign plants: %w", err)
		}

		if err := s.groups.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "group deleted", "id", id, "name", group.Name, "plants_moved", moved)
	return nil
}
