package plant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// GetPlant returns the detail view of one plant: the plant itself, its
// group and its configured frequencies. Dead plants are returned too.
func (s *Service) GetPlant(ctx context.Context, id uuid.UUID) (*Detail, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.plants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get plant: %w", err)
	}

	group, err := s.groups.GetByID(ctx, p.GroupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	freqs, err := s.freqs.ListByPlant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list frequencies: %w", err)
	}

	return &Detail{Plant: *p, Group: *group, Frequencies: freqs}, nil
}
