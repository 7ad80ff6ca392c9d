package care

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// PerformTasks records every task type in the input against every plant in
// the input, one care log entry per (plant, task) pair. It is not
// idempotent: repeating the call creates duplicate entries.
func (s *Service) PerformTasks(ctx context.Context, input PerformTasksInput) (int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return 0, domain.ErrUnauthorized
	}

	now := time.Now()
	if err := input.Validate(now); err != nil {
		return 0, err
	}

	performedAt := now
	if input.At != nil {
		performedAt = *input.At
	}

	plantIDs := dedupe(input.PlantIDs)
	taskTypes := dedupeTasks(input.TaskTypes)

	var created int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		living, err := s.plants.ListLivingByIDs(ctx, plantIDs)
		if err != nil {
			return fmt.Errorf("load plants: %w", err)
		}

		if len(living) != len(plantIDs) {
			alive := make(map[uuid.UUID]struct{}, len(living))
			for _, p := range living {
				alive[p.ID] = struct{}{}
			}
			for _, id := range plantIDs {
				if _, ok := alive[id]; !ok {
					return fmt.Errorf("plant %s: %w", id, domain.ErrNotFound)
				}
			}
		}

		created, err = s.logs.BatchCreate(ctx, plantIDs, taskTypes, performedAt)
		if err != nil {
			return fmt.Errorf("create care log entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "care tasks performed",
		"plants", len(plantIDs),
		"task_types", len(taskTypes),
		"entries", created,
	)
	return created, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupeTasks(types []domain.TaskType) []domain.TaskType {
	seen := make(map[domain.TaskType]struct{}, len(types))
	out := make([]domain.TaskType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
