// Package frequency implements the TaskFrequency repository using PostgreSQL.
// One row per (plant, task type); a NULL allowed_days row records an explicit
// "no schedule" override.
package frequency

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkotas/plantarium-backend/internal/adapter/postgres"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

// Repo provides task-frequency persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new frequency repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const listByPlantSQL = `
SELECT id, plant_id, task_type, allowed_days
FROM task_frequencies
WHERE plant_id = $1
ORDER BY task_type`

const listByPlantIDsSQL = `
SELECT id, plant_id, task_type, allowed_days
FROM task_frequencies
WHERE plant_id = ANY($1::uuid[])
ORDER BY plant_id, task_type`

const listForLivingSQL = `
SELECT f.id, f.plant_id, f.task_type, f.allowed_days
FROM task_frequencies f
JOIN plants p ON p.id = f.plant_id
WHERE p.alive`

const upsertSQL = `
INSERT INTO task_frequencies (plant_id, task_type, allowed_days)
VALUES ($1, $2, $3)
ON CONFLICT (plant_id, task_type) DO UPDATE SET allowed_days = EXCLUDED.allowed_days
RETURNING id, plant_id, task_type, allowed_days`

const deleteSQL = `
DELETE FROM task_frequencies
WHERE plant_id = $1 AND task_type = $2`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// ListByPlant returns the frequency rows of one plant ordered by task type.
// Returns an empty slice (not nil) when the plant has none.
func (r *Repo) ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.TaskFrequency, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByPlantSQL, plantID)
	if err != nil {
		return nil, fmt.Errorf("list frequencies: %w", err)
	}
	defer rows.Close()

	return scanFrequencies(rows)
}

// ListByPlantIDs returns the frequency rows of multiple plants in one query.
func (r *Repo) ListByPlantIDs(ctx context.Context, plantIDs []uuid.UUID) ([]domain.TaskFrequency, error) {
	if len(plantIDs) == 0 {
		return []domain.TaskFrequency{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByPlantIDsSQL, plantIDs)
	if err != nil {
		return nil, fmt.Errorf("list frequencies by plant ids: %w", err)
	}
	defer rows.Close()

	return scanFrequencies(rows)
}

// ListForLiving returns the frequency rows of every living plant.
// The care-due engine consumes this in bulk.
func (r *Repo) ListForLiving(ctx context.Context) ([]domain.TaskFrequency, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listForLivingSQL)
	if err != nil {
		return nil, fmt.Errorf("list frequencies for living plants: %w", err)
	}
	defer rows.Close()

	return scanFrequencies(rows)
}

// Upsert sets the allowed interval for a (plant, task type) pair, inserting
// or overwriting as needed. allowedDays nil stores NULL (no schedule).
func (r *Repo) Upsert(ctx context.Context, plantID uuid.UUID, taskType domain.TaskType, allowedDays *int) (*domain.TaskFrequency, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	f, err := scanFrequency(querier.QueryRow(ctx, upsertSQL, plantID, taskType.String(), allowedDays))
	if err != nil {
		return nil, postgres.MapError(err, "task_frequency", plantID)
	}

	return f, nil
}

// Delete removes the frequency row for a (plant, task type) pair.
// Not an error if no row exists (0 rows affected is OK).
func (r *Repo) Delete(ctx context.Context, plantID uuid.UUID, taskType domain.TaskType) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSQL, plantID, taskType.String()); err != nil {
		return postgres.MapError(err, "task_frequency", plantID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanFrequency(row pgx.Row) (*domain.TaskFrequency, error) {
	var (
		f           domain.TaskFrequency
		taskType    string
		allowedDays pgtype.Int4
	)

	if err := row.Scan(&f.ID, &f.PlantID, &taskType, &allowedDays); err != nil {
		return nil, err
	}

	f.TaskType = domain.TaskType(taskType)
	if allowedDays.Valid {
		days := int(allowedDays.Int32)
		f.AllowedDays = &days
	}

	return &f, nil
}

func scanFrequencies(rows pgx.Rows) ([]domain.TaskFrequency, error) {
	result := []domain.TaskFrequency{}
	for rows.Next() {
		var (
			f           domain.TaskFrequency
			taskType    string
			allowedDays pgtype.Int4
		)

		if err := rows.Scan(&f.ID, &f.PlantID, &taskType, &allowedDays); err != nil {
			return nil, err
		}

		f.TaskType = domain.TaskType(taskType)
		if allowedDays.Valid {
			days := int(allowedDays.Int32)
			f.AllowedDays = &days
		}

		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
