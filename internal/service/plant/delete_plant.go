package plant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// DeletePlant removes a plant and, through the schema's cascades, its
// frequencies, care log and graveyard entry. Admin only at the transport
// layer.
func (s *Service) DeletePlant(ctx context.Context, id uuid.UUID) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.plants.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}

	s.log.InfoContext(ctx, "plant deleted", "id", id)
	return nil
}
