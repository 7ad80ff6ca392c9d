package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskFrequency is the configured maximum number of days allowed between
// two performances of a task for one plant. AllowedDays == nil means the
// task has no fixed schedule and is never flagged overdue.
// At most one row exists per (plant, task type).
type TaskFrequency struct {
	ID          uuid.UUID
	PlantID     uuid.UUID
	TaskType    TaskType
	AllowedDays *int
}

// CareLogEntry is an immutable record of a task performed on a plant.
type CareLogEntry struct {
	ID          uuid.UUID
	PlantID     uuid.UUID
	TaskType    TaskType
	PerformedAt time.Time
}

// OverdueRecord is one (plant, task) pair whose elapsed days since the last
// performance meet or exceed the allowed interval. The engine emits these
// unordered; presentation decides the sort key.
type OverdueRecord struct {
	Plant     Plant
	Group     PlantGroup
	TaskType  TaskType
	DaysSince int
}

// HistoryRecord is a care log entry joined with the plant and group names
// shown in history views.
type HistoryRecord struct {
	CareLogEntry
	PlantName string
	GroupName string
}

// ScheduleDefaults maps a task type to its default allowed interval in days.
// A task type absent from the map has no default and gets no frequency row
// unless the user sets one explicitly.
type ScheduleDefaults map[TaskType]int

// Default returns the default interval for a task, or nil when the task has
// no default schedule.
func (d ScheduleDefaults) Default(t TaskType) *int {
	if days, ok := d[t]; ok {
		v := days
		return &v
	}
	return nil
}
