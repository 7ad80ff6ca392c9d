package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedGroup creates a plant group with a unique name and returns it.
func SeedGroup(t *testing.T, pool *pgxpool.Pool) domain.PlantGroup {
	t.Helper()
	return SeedGroupNamed(t, pool, "Group "+uniqueSuffix())
}

// SeedGroupNamed creates a plant group with the given name and returns it.
func SeedGroupNamed(t *testing.T, pool *pgxpool.Pool, name string) domain.PlantGroup {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	group := domain.PlantGroup{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO plant_groups (id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		group.ID, group.Name, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup insert: %v", err)
	}

	return group
}

// SeedPlant creates a living plant in the given group and returns it.
func SeedPlant(t *testing.T, pool *pgxpool.Pool, groupID uuid.UUID) domain.Plant {
	t.Helper()
	return SeedPlantNamed(t, pool, groupID, "Plant "+uniqueSuffix())
}

// SeedPlantNamed creates a living plant with the given name and returns it.
func SeedPlantNamed(t *testing.T, pool *pgxpool.Pool, groupID uuid.UUID, name string) domain.Plant {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	plant := domain.Plant{
		ID:         uuid.New(),
		Name:       name,
		GroupID:    groupID,
		AcquiredOn: now.AddDate(0, -1, 0),
		Alive:      true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO plants (id, name, group_id, acquired_on, notes, alive, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		plant.ID, plant.Name, plant.GroupID, plant.AcquiredOn, plant.Notes, plant.Alive, plant.CreatedAt, plant.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlant insert: %v", err)
	}

	return plant
}

// SeedFrequency creates a task frequency row for a plant.
// allowedDays may be nil for an explicit "no schedule" row.
func SeedFrequency(t *testing.T, pool *pgxpool.Pool, plantID uuid.UUID, taskType domain.TaskType, allowedDays *int) domain.TaskFrequency {
	t.Helper()
	ctx := context.Background()

	freq := domain.TaskFrequency{
		ID:          uuid.New(),
		PlantID:     plantID,
		TaskType:    taskType,
		AllowedDays: allowedDays,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO task_frequencies (id, plant_id, task_type, allowed_days)
		 VALUES ($1, $2, $3, $4)`,
		freq.ID, freq.PlantID, string(freq.TaskType), freq.AllowedDays,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFrequency insert: %v", err)
	}

	return freq
}

// SeedLogEntry creates a care log entry performed at the given time.
func SeedLogEntry(t *testing.T, pool *pgxpool.Pool, plantID uuid.UUID, taskType domain.TaskType, performedAt time.Time) domain.CareLogEntry {
	t.Helper()
	ctx := context.Background()

	entry := domain.CareLogEntry{
		ID:          uuid.New(),
		PlantID:     plantID,
		TaskType:    taskType,
		PerformedAt: performedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO care_log (id, plant_id, task_type, performed_at)
		 VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.PlantID, string(entry.TaskType), entry.PerformedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLogEntry insert: %v", err)
	}

	return entry
}

// SeedUser creates a user with a unique username and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$not.a.real.hash." + suffix,
		Role:         domain.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}
