// Package plant implements the Plant repository using PostgreSQL.
// It provides CRUD over living plants, the alive flag flip used by the
// graveyard flow, and the group reassignment used by the deletion cascade.
package plant

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkotas/plantarium-backend/internal/adapter/postgres"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

// Repo provides plant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new plant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// plantCols is the scan order every plant query must return.
const plantCols = `p.id, p.name, p.group_id, p.acquired_on, p.notes, p.alive, p.created_at, p.updated_at`

// groupCols follows plantCols in joined queries.
const groupCols = `g.id, g.name, g.created_at, g.updated_at`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + plantCols + `
FROM plants p
WHERE p.id = $1`

const listLivingByIDsSQL = `
SELECT ` + plantCols + `
FROM plants p
WHERE p.id = ANY($1::uuid[]) AND p.alive`

const existsLivingNameSQL = `
SELECT EXISTS (
    SELECT 1 FROM plants
    WHERE lower(name) = lower($1) AND alive AND id <> $2
)`

const createSQL = `
INSERT INTO plants (name, group_id, acquired_on, notes)
VALUES ($1, $2, $3, $4)
RETURNING id, name, group_id, acquired_on, notes, alive, created_at, updated_at`

const updateSQL = `
UPDATE plants
SET name = $2, group_id = $3, acquired_on = $4, notes = $5, updated_at = now()
WHERE id = $1
RETURNING id, name, group_id, acquired_on, notes, alive, created_at, updated_at`

const markDeadSQL = `
UPDATE plants
SET alive = false, updated_at = now()
WHERE id = $1 AND alive`

const reassignGroupSQL = `
UPDATE plants
SET group_id = $2, updated_at = now()
WHERE group_id = $1`

const deleteSQL = `DELETE FROM plants WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a plant by primary key, living or dead.
// Returns domain.ErrNotFound if the plant does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPlant(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "plant", id)
	}

	return p, nil
}

// ListLiving returns living plants joined with their groups, filtered and
// sorted per the filter. Returns an empty slice (not nil) on no matches.
func (r *Repo) ListLiving(ctx context.Context, filter domain.PlantFilter) ([]domain.PlantWithGroup, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(plantCols + ", " + groupCols).
		From("plants p").
		Join("plant_groups g ON g.id = p.group_id").
		Where("p.alive")

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"p.name": pattern},
			sq.ILike{"g.name": pattern},
		})
	}
	if filter.GroupID != nil {
		builder = builder.Where(sq.Eq{"p.group_id": *filter.GroupID})
	}

	builder = builder.OrderBy(orderClause(filter))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list plants query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	result, err := scanPlantsWithGroup(rows)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	return result, nil
}

// ListLivingByIDs returns the living plants among the given IDs.
// Dead or unknown IDs are silently absent from the result.
func (r *Repo) ListLivingByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Plant, error) {
	if len(ids) == 0 {
		return []domain.Plant{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listLivingByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("list living plants by ids: %w", err)
	}
	defer rows.Close()

	result := []domain.Plant{}
	for rows.Next() {
		p, err := scanPlantFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("list living plants by ids: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list living plants by ids: %w", err)
	}

	return result, nil
}

// ExistsLivingName reports whether a living plant other than excludeID
// already uses the name (case-insensitive). Pass uuid.Nil on create.
func (r *Repo) ExistsLivingName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsLivingNameSQL, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check living plant name: %w", err)
	}

	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new plant and returns the persisted domain.Plant.
// Returns domain.ErrAlreadyExists when a living plant already has the name.
func (r *Repo) Create(ctx context.Context, p *domain.Plant) (*domain.Plant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanPlant(querier.QueryRow(ctx, createSQL,
		p.Name, p.GroupID, p.AcquiredOn, p.Notes))
	if err != nil {
		return nil, postgres.MapError(err, "plant", uuid.Nil)
	}

	return created, nil
}

// Update overwrites a plant's editable fields and returns the updated plant.
// Returns domain.ErrNotFound if the plant does not exist.
func (r *Repo) Update(ctx context.Context, p *domain.Plant) (*domain.Plant, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanPlant(querier.QueryRow(ctx, updateSQL,
		p.ID, p.Name, p.GroupID, p.AcquiredOn, p.Notes))
	if err != nil {
		return nil, postgres.MapError(err, "plant", p.ID)
	}

	return updated, nil
}

// MarkDead flips the alive flag to false.
// Returns false without error when the plant was already dead, so the
// graveyard flow stays idempotent.
func (r *Repo) MarkDead(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markDeadSQL, id)
	if err != nil {
		return false, postgres.MapError(err, "plant", id)
	}

	return tag.RowsAffected() > 0, nil
}

// ReassignGroup moves every plant (living and dead) from one group to
// another and returns how many moved.
func (r *Repo) ReassignGroup(ctx context.Context, fromGroupID, toGroupID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, reassignGroupSQL, fromGroupID, toGroupID)
	if err != nil {
		return 0, postgres.MapError(err, "plant", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

// Delete removes a plant. CASCADE deletes its frequencies, care log and
// graveyard entry.
// Returns domain.ErrNotFound if the plant does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "plant", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("plant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// orderClause maps a PlantFilter to a safe ORDER BY expression.
// Unknown sort keys fall back to name ascending.
func orderClause(filter domain.PlantFilter) string {
	dir := "ASC"
	if filter.SortOrder == "desc" {
		dir = "DESC"
	}

	switch filter.SortBy {
	case "group":
		return "g.name " + dir + ", p.name ASC"
	case "acquired_on":
		return "p.acquired_on " + dir + ", p.name ASC"
	default:
		return "p.name " + dir
	}
}

// scanPlant scans a single row into a domain.Plant.
func scanPlant(row pgx.Row) (*domain.Plant, error) {
	var (
		p          domain.Plant
		acquiredOn pgtype.Date
		notes      pgtype.Text
	)

	err := row.Scan(&p.ID, &p.Name, &p.GroupID, &acquiredOn, &notes,
		&p.Alive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	applyNullable(&p, acquiredOn, notes)
	return &p, nil
}

// scanPlantFromRows scans the plant columns of the current pgx.Rows row.
func scanPlantFromRows(rows pgx.Rows) (domain.Plant, error) {
	var (
		p          domain.Plant
		acquiredOn pgtype.Date
		notes      pgtype.Text
	)

	err := rows.Scan(&p.ID, &p.Name, &p.GroupID, &acquiredOn, &notes,
		&p.Alive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Plant{}, err
	}

	applyNullable(&p, acquiredOn, notes)
	return p, nil
}

// scanPlantsWithGroup scans joined plant+group rows.
func scanPlantsWithGroup(rows pgx.Rows) ([]domain.PlantWithGroup, error) {
	result := []domain.PlantWithGroup{}
	for rows.Next() {
		var (
			pg         domain.PlantWithGroup
			acquiredOn pgtype.Date
			notes      pgtype.Text
		)

		err := rows.Scan(
			&pg.Plant.ID, &pg.Plant.Name, &pg.Plant.GroupID, &acquiredOn, &notes,
			&pg.Plant.Alive, &pg.Plant.CreatedAt, &pg.Plant.UpdatedAt,
			&pg.Group.ID, &pg.Group.Name, &pg.Group.CreatedAt, &pg.Group.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		applyNullable(&pg.Plant, acquiredOn, notes)
		result = append(result, pg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// applyNullable copies the nullable columns onto the plant.
func applyNullable(p *domain.Plant, acquiredOn pgtype.Date, notes pgtype.Text) {
	if acquiredOn.Valid {
		p.AcquiredOn = acquiredOn.Time
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
}
