// Package care implements the care-due engine, the task performer and the
// care-history operations.
package care

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

type plantRepo interface {
	ListLiving(ctx context.Context, filter domain.PlantFilter) ([]domain.PlantWithGroup, error)
	ListLivingByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Plant, error)
}

type frequencyRepo interface {
	ListForLiving(ctx context.Context) ([]domain.TaskFrequency, error)
}

type logRepo interface {
	BatchCreate(ctx context.Context, plantIDs []uuid.UUID, taskTypes []domain.TaskType, performedAt time.Time) (int, error)
	LatestForLiving(ctx context.Context) ([]domain.CareLogEntry, error)
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, error)
	UpdateTimestamp(ctx context.Context, id uuid.UUID, performedAt time.Time) (*domain.CareLogEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides care scheduling, task performance and history operations.
type Service struct {
	plants plantRepo
	freqs  frequencyRepo
	logs   logRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new Care service.
func NewService(
	log *slog.Logger,
	plants plantRepo,
	freqs frequencyRepo,
	logs logRepo,
	tx txManager,
) *Service {
	return &Service{
		plants: plants,
		freqs:  freqs,
		logs:   logs,
		tx:     tx,
		log:    log.With("service", "care"),
	}
}

// matchingTaskTypes returns the task types whose display label contains the
// search term, so history search covers "watered" as well as plant names.
func matchingTaskTypes(search string) []domain.TaskType {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return nil
	}

	var matched []domain.TaskType
	for _, t := range domain.AllTaskTypes {
		if strings.Contains(strings.ToLower(t.Label()), term) {
			matched = append(matched, t)
		}
	}
	return matched
}
