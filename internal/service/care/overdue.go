package care

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// ComputeOverdue is a pure function. No DB, no context, no logger.
// It emits one record per (plant, task) pair whose last performance is at
// least the allowed interval old, measured in calendar days so that a task
// allowed every N days is flagged on day N, not N+1.
//
// Pairs are skipped when the frequency has no interval (AllowedDays nil),
// when the task type is not one of the known five, when the plant is not in
// the given set, or when the task was never performed. Output order is
// unspecified; callers sort for presentation.
func ComputeOverdue(
	now time.Time,
	plants []domain.PlantWithGroup,
	freqs []domain.TaskFrequency,
	latest []domain.CareLogEntry,
) []domain.OverdueRecord {
	plantByID := make(map[uuid.UUID]domain.PlantWithGroup, len(plants))
	for _, p := range plants {
		plantByID[p.Plant.ID] = p
	}

	type pair struct {
		plant uuid.UUID
		task  domain.TaskType
	}
	lastByPair := make(map[pair]time.Time, len(latest))
	for _, e := range latest {
		key := pair{plant: e.PlantID, task: e.TaskType}
		if cur, ok := lastByPair[key]; !ok || e.PerformedAt.After(cur) {
			lastByPair[key] = e.PerformedAt
		}
	}

	var records []domain.OverdueRecord
	for _, f := range freqs {
		if f.AllowedDays == nil || !f.TaskType.IsValid() {
			continue
		}

		p, ok := plantByID[f.PlantID]
		if !ok {
			continue
		}

		last, ok := lastByPair[pair{plant: f.PlantID, task: f.TaskType}]
		if !ok {
			continue
		}

		days := calendarDaysBetween(last, now)
		if days >= *f.AllowedDays {
			records = append(records, domain.OverdueRecord{
				Plant:     p.Plant,
				Group:     p.Group,
				TaskType:  f.TaskType,
				DaysSince: days,
			})
		}
	}

	return records
}

// calendarDaysBetween counts whole calendar days from one instant's date to
// another's, both interpreted in the reference instant's location. Midnight
// boundaries count: 23:59 to 00:01 is one day.
func calendarDaysBetween(from, to time.Time) int {
	loc := to.Location()
	f := from.In(loc)

	fromDate := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(toDate.Sub(fromDate) / (24 * time.Hour))
}
