package care

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// ListOverdue loads every living plant, its configured frequencies and the
// most recent performance per (plant, task), and runs the engine over them.
// The result is unordered.
func (s *Service) ListOverdue(ctx context.Context, now time.Time) ([]domain.OverdueRecord, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	plants, err := s.plants.ListLiving(ctx, domain.PlantFilter{})
	if err != nil {
		return nil, fmt.Errorf("list living plants: %w", err)
	}

	freqs, err := s.freqs.ListForLiving(ctx)
	if err != nil {
		return nil, fmt.Errorf("list frequencies: %w", err)
	}

	latest, err := s.logs.LatestForLiving(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest care log: %w", err)
	}

	return ComputeOverdue(now, plants, freqs, latest), nil
}

// OverduePlantCount returns the number of distinct plants with at least one
// overdue task. The home page shows this summary figure.
func (s *Service) OverduePlantCount(ctx context.Context, now time.Time) (int, error) {
	records, err := s.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		seen[r.Plant.ID] = struct{}{}
	}

	return len(seen), nil
}
