// Package group implements the PlantGroup repository using PostgreSQL.
// It provides CRUD operations plus the lazy-created protected default group
// and living-plant counts used by group listings and the deletion cascade.
package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkotas/plantarium-backend/internal/adapter/postgres"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

// Repo provides plant-group persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new group repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, name, created_at, updated_at
FROM plant_groups
WHERE id = $1`

const getByNameSQL = `
SELECT id, name, created_at, updated_at
FROM plant_groups
WHERE lower(name) = lower($1)`

const createSQL = `
INSERT INTO plant_groups (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at`

const createIfAbsentSQL = `
INSERT INTO plant_groups (name)
VALUES ($1)
ON CONFLICT (lower(name)) DO NOTHING
RETURNING id, name, created_at, updated_at`

const renameSQL = `
UPDATE plant_groups
SET name = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, created_at, updated_at`

const deleteSQL = `DELETE FROM plant_groups WHERE id = $1`

const countLivingPlantsSQL = `
SELECT count(*)
FROM plants
WHERE group_id = $1 AND alive`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a group by primary key.
// Returns domain.ErrNotFound if the group does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantGroup, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "plant_group", id)
	}

	return g, nil
}

// GetByName returns a group by case-insensitive name match.
// Returns domain.ErrNotFound if no group has that name.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.PlantGroup, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, getByNameSQL, name))
	if err != nil {
		return nil, postgres.MapError(err, "plant_group", uuid.Nil)
	}

	return g, nil
}

// List returns all groups with their living-plant counts.
// Sortable by name or plant_count; defaults to name ascending.
// Returns an empty slice (not nil) when no groups exist.
func (r *Repo) List(ctx context.Context, filter domain.GroupFilter) ([]domain.GroupWithCount, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(
			"g.id", "g.name", "g.created_at", "g.updated_at",
			"count(p.id) FILTER (WHERE p.alive) AS living_plants",
		).
		From("plant_groups g").
		LeftJoin("plants p ON p.group_id = g.id").
		GroupBy("g.id").
		OrderBy(orderClause(filter))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list groups query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	result := []domain.GroupWithCount{}
	for rows.Next() {
		var gc domain.GroupWithCount
		if err := rows.Scan(&gc.ID, &gc.Name, &gc.CreatedAt, &gc.UpdatedAt, &gc.LivingPlants); err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		result = append(result, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	return result, nil
}

// CountLivingPlants returns the number of living plants in a group.
func (r *Repo) CountLivingPlants(ctx context.Context, groupID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countLivingPlantsSQL, groupID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count living plants: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new group and returns the persisted domain.PlantGroup.
// Returns domain.ErrAlreadyExists on a case-insensitive name collision.
func (r *Repo) Create(ctx context.Context, name string) (*domain.PlantGroup, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, createSQL, name))
	if err != nil {
		return nil, postgres.MapError(err, "plant_group", uuid.Nil)
	}

	return g, nil
}

// GetOrCreateDefault returns the protected default group, creating it on
// first use. Safe under concurrent callers: the insert backs off to a read
// when another transaction created the row first.
func (r *Repo) GetOrCreateDefault(ctx context.Context) (*domain.PlantGroup, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, createIfAbsentSQL, domain.DefaultGroupName))
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "plant_group", uuid.Nil)
	}

	// ON CONFLICT DO NOTHING returned no row, so the group already exists.
	return r.GetByName(ctx, domain.DefaultGroupName)
}

// Rename changes a group's name and returns the updated group.
// Returns domain.ErrNotFound if the group does not exist and
// domain.ErrAlreadyExists on a name collision.
func (r *Repo) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.PlantGroup, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(querier.QueryRow(ctx, renameSQL, id, name))
	if err != nil {
		return nil, postgres.MapError(err, "plant_group", id)
	}

	return g, nil
}

// Delete removes a group. The plants FK is ON DELETE RESTRICT, so callers
// must reassign plants first.
// Returns domain.ErrNotFound if the group does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "plant_group", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plant_group %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// orderClause maps a GroupFilter to a safe ORDER BY expression.
// Unknown sort keys fall back to name ascending.
func orderClause(filter domain.GroupFilter) string {
	dir := "ASC"
	if filter.SortOrder == "desc" {
		dir = "DESC"
	}

	switch filter.SortBy {
	case "plant_count":
		return "living_plants " + dir + ", g.name ASC"
	default:
		return "g.name " + dir
	}
}

// scanGroup scans a single row into a domain.PlantGroup.
func scanGroup(row pgx.Row) (*domain.PlantGroup, error) {
	var (
		id        uuid.UUID
		name      string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &domain.PlantGroup{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
