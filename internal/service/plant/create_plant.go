package plant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// CreatePlant registers a new living plant together with its care schedule.
// Without an explicit group the plant lands in the default group, which is
// created on first use.
func (s *Service) CreatePlant(ctx context.Context, input CreatePlantInput) (*Detail, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)

	var detail *Detail
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		taken, err := s.plants.ExistsLivingName(ctx, name, uuid.Nil)
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

		created, err := s.plants.Create(ctx, &domain.Plant{
			Name:       name,
			GroupID:    group.ID,
			AcquiredOn: input.AcquiredOn,
			Notes:      trimOrNil(input.Notes),
			Alive:      true,
		})
		if err != nil {
			return fmt.Errorf("create plant: %w", err)
		}

		var freqs []domain.TaskFrequency
		for _, t := range domain.AllTaskTypes {
			days, mentioned := input.Frequencies[t]
			if !mentioned {
				days = s.defaults.Default(t)
			}
			if days == nil {
				continue
			}

			f, err := s.freqs.Upsert(ctx, created.ID, t, days)
			if err != nil {
				return fmt.Errorf("set %s frequency: %w", t, err)
			}
			freqs = append(freqs, *f)
		}

		detail = &Detail{Plant: *created, Group: *group, Frequencies: freqs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "plant created", "id", detail.Plant.ID, "name", name)
	return detail, nil
}

// resolveGroup loads the requested group or falls back to the default one.
func (s *Service) resolveGroup(ctx context.Context, groupID *uuid.UUID) (*domain.PlantGroup, error) {
	if groupID != nil {
		group, err := s.groups.GetByID(ctx, *groupID)
		if err != nil {
			return nil, fmt.Errorf("get group: %w", err)
		}
		return group, nil
	}

	group, err := s.groups.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("get or create default group: %w", err)
	}
	return group, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
