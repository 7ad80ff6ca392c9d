// Package carelog implements the care-log repository using PostgreSQL.
// Entries record performed tasks; the batch insert writes the full
// plants x tasks cross product in one statement, and the DISTINCT ON
// query feeds the care-due engine with latest performances.
package carelog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkotas/plantarium-backend/internal/adapter/postgres"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

// Repo provides care-log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new care-log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, plant_id, task_type, performed_at
FROM care_log
WHERE id = $1`

const listByPlantSQL = `
SELECT id, plant_id, task_type, performed_at
FROM care_log
WHERE plant_id = $1
ORDER BY performed_at DESC`

const batchCreateSQL = `
INSERT INTO care_log (plant_id, task_type, performed_at)
SELECT p, t, $3
FROM unnest($1::uuid[]) AS p
CROSS JOIN unnest($2::text[]) AS t`

const latestForLivingSQL = `
SELECT DISTINCT ON (c.plant_id, c.task_type)
    c.id, c.plant_id, c.task_type, c.performed_at
FROM care_log c
JOIN plants p ON p.id = c.plant_id
WHERE p.alive
ORDER BY c.plant_id, c.task_type, c.performed_at DESC`

const updateTimestampSQL = `
UPDATE care_log
SET performed_at = $2
WHERE id = $1
RETURNING id, plant_id, task_type, performed_at`

const deleteSQL = `DELETE FROM care_log WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a log entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CareLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "care_log", id)
	}

	return e, nil
}

// ListByPlant returns one plant's full history, newest first.
// Returns an empty slice (not nil) when the plant has no entries.
func (r *Repo) ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.CareLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByPlantSQL, plantID)
	if err != nil {
		return nil, fmt.Errorf("list care log by plant: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// LatestForLiving returns the most recent entry per (living plant, task type).
// At most one entry per pair; plants with no history yield nothing.
func (r *Repo) LatestForLiving(ctx context.Context) ([]domain.CareLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, latestForLivingSQL)
	if err != nil {
		return nil, fmt.Errorf("latest care log for living plants: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List returns history entries joined with plant and group names, newest
// first, filtered per the filter. Returns an empty slice (not nil) on no
// matches.
func (r *Repo) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryRecord, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"c.id", "c.plant_id", "c.task_type", "c.performed_at",
			"p.name", "g.name",
		).
		From("care_log c").
		Join("plants p ON p.id = c.plant_id").
		Join("plant_groups g ON g.id = p.group_id").
		OrderBy("c.performed_at DESC, c.id")

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		match := sq.Or{
			sq.ILike{"p.name": pattern},
			sq.ILike{"g.name": pattern},
		}
		for _, t := range filter.TaskTypes {
			match = append(match, sq.Eq{"c.task_type": t.String()})
		}
		builder = builder.Where(match)
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"c.performed_at": *filter.Since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list care log query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list care log: %w", err)
	}
	defer rows.Close()

	result := []domain.HistoryRecord{}
	for rows.Next() {
		var (
			h        domain.HistoryRecord
			taskType string
		)

		err := rows.Scan(&h.ID, &h.PlantID, &taskType, &h.PerformedAt, &h.PlantName, &h.GroupName)
		if err != nil {
			return nil, fmt.Errorf("list care log: %w", err)
		}

		h.TaskType = domain.TaskType(taskType)
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list care log: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BatchCreate inserts the full plants x tasks cross product with one shared
// timestamp and returns the number of entries written. No deduplication:
// repeating a pair inserts another entry.
func (r *Repo) BatchCreate(ctx context.Context, plantIDs []uuid.UUID, taskTypes []domain.TaskType, performedAt time.Time) (int, error) {
	if len(plantIDs) == 0 || len(taskTypes) == 0 {
		return 0, nil
	}

	types := make([]string, len(taskTypes))
	for i, t := range taskTypes {
		types[i] = t.String()
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, batchCreateSQL, plantIDs, types, performedAt)
	if err != nil {
		return 0, postgres.MapError(err, "care_log", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

// UpdateTimestamp corrects a mis-entered performance time.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) UpdateTimestamp(ctx context.Context, id uuid.UUID, performedAt time.Time) (*domain.CareLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, updateTimestampSQL, id, performedAt))
	if err != nil {
		return nil, postgres.MapError(err, "care_log", id)
	}

	return e, nil
}

// Delete removes a log entry.
// Returns domain.ErrNotFound if the entry does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "care_log", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("care_log %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (*domain.CareLogEntry, error) {
	var (
		e        domain.CareLogEntry
		taskType string
	)

	if err := row.Scan(&e.ID, &e.PlantID, &taskType, &e.PerformedAt); err != nil {
		return nil, err
	}

	e.TaskType = domain.TaskType(taskType)
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]domain.CareLogEntry, error) {
	result := []domain.CareLogEntry{}
	for rows.Next() {
		var (
			e        domain.CareLogEntry
			taskType string
		)

		if err := rows.Scan(&e.ID, &e.PlantID, &taskType, &e.PerformedAt); err != nil {
			return nil, err
		}

		e.TaskType = domain.TaskType(taskType)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
