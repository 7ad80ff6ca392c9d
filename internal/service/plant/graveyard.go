package plant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// MoveToGraveyard marks a plant dead and records its graveyard entry in one
// transaction. The transition is one-way and idempotent: when the plant is
// already dead it returns (nil, nil) and changes nothing.
func (s *Service) MoveToGraveyard(ctx context.Context, plantID uuid.UUID, cause domain.CauseOfDeath) (*domain.GraveyardEntry, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if plantID == uuid.Nil {
		return nil, domain.NewValidationError("plant_id", "required")
	}
	if cause == "" {
		cause = domain.CauseUnknown
	}
	if !cause.IsValid() {
		return nil, domain.NewValidationError("cause", "unknown cause of death: "+string(cause))
	}

	var entry *domain.GraveyardEntry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		died, err := s.plants.MarkDead(ctx, plantID)
		if err != nil {
			return fmt.Errorf("mark plant dead: %w", err)
		}
		if !died {
			// Distinguish an already dead plant from a missing one.
			if _, err := s.plants.GetByID(ctx, plantID); err != nil {
				return fmt.Errorf("get plant: %w", err)
			}
			return nil
		}

		entry, err = s.graveyard.Create(ctx, plantID, time.Now(), cause)
		if err != nil {
			return fmt.Errorf("create graveyard entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entry != nil {
		s.log.InfoContext(ctx, "plant moved to graveyard", "plant_id", plantID, "cause", cause)
	}
	return entry, nil
}

// ListGraveyard returns dead plants with their death records, joined with
// the plant and former group names.
func (s *Service) ListGraveyard(ctx context.Context, input ListGraveyardInput) ([]domain.GraveyardRecord, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	records, err := s.graveyard.List(ctx, domain.GraveyardFilter{
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("list graveyard: %w", err)
	}
	return records, nil
}
