package plant

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// UpdatePlant edits a plant's fields and replaces its care schedule with the
// one in the input: mentioned intervals are upserted, everything else is
// deleted.
func (s *Service) UpdatePlant(ctx context.Context, input UpdatePlantInput) (*Detail, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)

	var detail *Detail
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.plants.GetByID(ctx, input.ID)
		if err != nil {
			return fmt.Errorf("get plant: %w", err)
		}

		taken, err := s.plants.ExistsLivingName(ctx, name, input.ID)
		if err != nil {
			return fmt.Errorf("check living name: %w", err)
		}
		if taken {
			return fmt.Errorf("plant name %q: %w", name, domain.ErrAlreadyExists)
		}

		group, err := s.resolveGroup(ctx, input.GroupID)
		if err != nil {
			return err
		}

		current.Name = name
		current.GroupID = group.ID
		current.AcquiredOn = input.AcquiredOn
		current.Notes = trimOrNil(input.Notes)

		updated, err := s.plants.Update(ctx, current)
		if err != nil {
			return fmt.Errorf("update plant: %w", err)
		}

		var freqs []domain.TaskFrequency
		for _, t := range domain.AllTaskTypes {
			days := input.Frequencies[t]
			if days == nil {
				if err := s.freqs.Delete(ctx, updated.ID, t); err != nil {
					return fmt.Errorf("clear %s frequency: %w", t, err)
				}
				continue
			}

			f, err := s.freqs.Upsert(ctx, updated.ID, t, days)
			if err != nil {
				return fmt.Errorf("set %s frequency: %w", t, err)
			}
			freqs = append(freqs, *f)
		}

		detail = &Detail{Plant: *updated, Group: *group, Frequencies: freqs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "plant updated", "id", detail.Plant.ID)
	return detail, nil
}
