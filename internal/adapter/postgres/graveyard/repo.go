// Package graveyard implements the graveyard repository using PostgreSQL.
// Exactly one entry per dead plant, enforced by a unique plant_id.
package graveyard

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

// Repo provides graveyard persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new graveyard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByPlantIDSQL = `
SELECT id, plant_id, date_of_death, cause
FROM graveyard
WHERE plant_id = $1`

const createSQL = `
INSERT INTO graveyard (plant_id, date_of_death, cause)
VALUES ($1, $2, $3)
RETURNING id, plant_id, date_of_death, cause`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByPlantID returns the graveyard entry of a plant.
// Returns domain.ErrNotFound if the plant has no entry.
func (r *Repo) GetByPlantID(ctx context.Context, plantID uuid.UUID) (*domain.GraveyardEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, getByPlantIDSQL, plantID))
	if err != nil {
		return nil, postgres.MapError(err, "graveyard_entry", plantID)
	}

	return e, nil
}

// Create inserts a graveyard entry for a plant.
// Returns domain.ErrAlreadyExists when the plant is already buried.
func (r *Repo) Create(ctx context.Context, plantID uuid.UUID, dateOfDeath time.Time, cause domain.CauseOfDeath) (*domain.GraveyardEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(querier.QueryRow(ctx, createSQL, plantID, dateOfDeath, cause.String()))
	if err != nil {
		return nil, postgres.MapError(err, "graveyard_entry", plantID)
	}

	return e, nil
}

// List returns all graveyard entries joined with plant and group names.
// Sortable by name, cause or date_of_death; defaults to date_of_death
// descending. Returns an empty slice (not nil) when the graveyard is empty.
func (r *Repo) List(ctx context.Context, filter domain.GraveyardFilter) ([]domain.GraveyardRecord, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"gr.id", "gr.plant_id", "gr.date_of_death", "gr.cause",
			"p.name", "g.name",
		).
		From("graveyard gr").
		Join("plants p ON p.id = gr.plant_id").
		Join("plant_groups g ON g.id = p.group_id").
		OrderBy(orderClause(filter))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list graveyard query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list graveyard: %w", err)
	}
	defer rows.Close()

	result := []domain.GraveyardRecord{}
	for rows.Next() {
		var (
			row   domain.GraveyardRecord
			cause string
		)

		err := rows.Scan(&row.ID, &row.PlantID, &row.DateOfDeath, &cause, &row.PlantName, &row.GroupName)
		if err != nil {
			return nil, fmt.Errorf("list graveyard: %w", err)
		}

		row.Cause = domain.CauseOfDeath(cause)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list graveyard: %w", err)
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// orderClause maps a GraveyardFilter to a safe ORDER BY expression.
// Unknown sort keys fall back to date_of_death descending.
func orderClause(filter domain.GraveyardFilter) string {
	dir := "ASC"
	if filter.SortOrder == "desc" {
		dir = "DESC"
	}

	switch filter.SortBy {
	case "name":
		return "p.name " + dir
	case "cause":
		return "gr.cause " + dir + ", p.name ASC"
	case "date_of_death":
		return "gr.date_of_death " + dir + ", p.name ASC"
	default:
		return "gr.date_of_death DESC, p.name ASC"
	}
}

func scanEntry(row pgx.Row) (*domain.GraveyardEntry, error) {
	var (
		e     domain.GraveyardEntry
		cause string
	)

	if err := row.Scan(&e.ID, &e.PlantID, &e.DateOfDeath, &cause); err != nil {
		return nil, err
	}

	e.Cause = domain.CauseOfDeath(cause)
	return &e, nil
}
