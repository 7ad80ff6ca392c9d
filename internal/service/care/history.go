package care

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// ListHistory returns care log entries joined with plant and group names,
// newest first. When a search term is given it matches plant names, group
// names and human task labels, any of which qualifies an entry.
func (s *Service) ListHistory(ctx context.Context, input ListHistoryInput) ([]domain.HistoryRecord, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.HistoryFilter{}
	if input.Search != "" {
		filter.Search = &input.Search
		filter.TaskTypes = matchingTaskTypes(input.Search)
	}
	if input.Window != "" {
		since := windowStart(time.Now(), input.Window)
		filter.Since = &since
	}

	records, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list care history: %w", err)
	}
	return records, nil
}

// UpdateLogTimestamp moves an existing care log entry to a different moment
// in time. The task type and plant are fixed at creation.
func (s *Service) UpdateLogTimestamp(ctx context.Context, input UpdateLogTimestampInput) (*domain.CareLogEntry, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(time.Now()); err != nil {
		return nil, err
	}

	entry, err := s.logs.UpdateTimestamp(ctx, input.ID, input.PerformedAt)
	if err != nil {
		return nil, fmt.Errorf("update care log entry: %w", err)
	}

	s.log.InfoContext(ctx, "care log entry rescheduled", "id", entry.ID)
	return entry, nil
}

// DeleteLogEntry removes a single care log entry. The overdue engine sees
// the previous performance, if any, afterwards.
func (s *Service) DeleteLogEntry(ctx context.Context, id uuid.UUID) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "is required")
	}

	if err := s.logs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete care log entry: %w", err)
	}

	s.log.InfoContext(ctx, "care log entry deleted", "id", id)
	return nil
}

func windowStart(now time.Time, w HistoryWindow) time.Time {
	switch w {
	case WindowDay:
		return now.AddDate(0, 0, -1)
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	}
	return now
}
