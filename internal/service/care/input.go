package care

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// PerformTasksInput records that a set of tasks was performed on a set of
// plants. At defaults to the current time when nil.
type PerformTasksInput struct {
	TaskTypes []domain.TaskType
	PlantIDs  []uuid.UUID
	At        *time.Time
}

func (in PerformTasksInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	if len(in.TaskTypes) == 0 {
		errs = append(errs, domain.FieldError{Field: "task_types", Message: "at least one task type is required"})
	}
	for _, t := range in.TaskTypes {
		if !t.IsValid() {
			errs = append(errs, domain.FieldError{Field: "task_types", Message: "unknown task type: " + string(t)})
		}
	}

	if len(in.PlantIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "plant_ids", Message: "at least one plant is required"})
	}

	if in.At != nil && in.At.After(now) {
		errs = append(errs, domain.FieldError{Field: "performed_at", Message: "must not be in the future"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HistoryWindow bounds a care history listing to a trailing period.
type HistoryWindow string

const (
	WindowDay   HistoryWindow = "day"
	WindowWeek  HistoryWindow = "week"
	WindowMonth HistoryWindow = "month"
)

func (w HistoryWindow) IsValid() bool {
	switch w {
	case WindowDay, WindowWeek, WindowMonth:
		return true
	}
	return false
}

// ListHistoryInput filters the care history. Search matches plant names,
// group names and task labels. An empty Window means no time bound.
type ListHistoryInput struct {
	Search string
	Window HistoryWindow
}

func (in ListHistoryInput) Validate() error {
	if in.Window != "" && !in.Window.IsValid() {
		return domain.NewValidationError("window", "must be one of: day, week, month")
	}
	return nil
}

type UpdateLogTimestampInput struct {
	ID          uuid.UUID
	PerformedAt time.Time
}

func (in UpdateLogTimestampInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	if in.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "is required"})
	}
	if in.PerformedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "performed_at", Message: "is required"})
	} else if in.PerformedAt.After(now) {
		errs = append(errs, domain.FieldError{Field: "performed_at", Message: "must not be in the future"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
