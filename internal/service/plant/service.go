// Package plant implements plant CRUD, care frequency management and the
// one-way transition to the graveyard.
package plant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/config"
	"github.com/mkotas/plantarium-backend/internal/domain"
)

type plantRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error)
	ListLiving(ctx context.Context, filter domain.PlantFilter) ([]domain.PlantWithGroup, error)
	ExistsLivingName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, p *domain.Plant) (*domain.Plant, error)
	Update(ctx context.Context, p *domain.Plant) (*domain.Plant, error)
	MarkDead(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type groupRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantGroup, error)
	GetOrCreateDefault(ctx context.Context) (*domain.PlantGroup, error)
}

type frequencyRepo interface {
	ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.TaskFrequency, error)
	Upsert(ctx context.Context, plantID uuid.UUID, taskType domain.TaskType, allowedDays *int) (*domain.TaskFrequency, error)
	Delete(ctx context.Context, plantID uuid.UUID, taskType domain.TaskType) error
}

type graveyardRepo interface {
	GetByPlantID(ctx context.Context, plantID uuid.UUID) (*domain.GraveyardEntry, error)
	Create(ctx context.Context, plantID uuid.UUID, dateOfDeath time.Time, cause domain.CauseOfDeath) (*domain.GraveyardEntry, error)
	List(ctx context.Context, filter domain.GraveyardFilter) ([]domain.GraveyardRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides plant lifecycle operations.
type Service struct {
	plants    plantRepo
	groups    groupRepo
	freqs     frequencyRepo
	graveyard graveyardRepo
	tx        txManager
	defaults  domain.ScheduleDefaults
	log       *slog.Logger
}

// NewService creates a new Plant service. Schedule defaults come from the
// care configuration; a zero interval there means the task has no default.
func NewService(
	log *slog.Logger,
	cfg config.CareConfig,
	plants plantRepo,
	groups groupRepo,
	freqs frequencyRepo,
	graveyard graveyardRepo,
	tx txManager,
) *Service {
	return &Service{
		plants:    plants,
		groups:    groups,
		freqs:     freqs,
		graveyard: graveyard,
		tx:        tx,
		defaults:  scheduleDefaults(cfg),
		log:       log.With("service", "plant"),
	}
}

func scheduleDefaults(cfg config.CareConfig) domain.ScheduleDefaults {
	d := domain.ScheduleDefaults{}
	set := func(t domain.TaskType, days int) {
		if days > 0 {
			d[t] = days
		}
	}
	set(domain.TaskWatering, cfg.WateringDefaultDays)
	set(domain.TaskFertilizing, cfg.FertilizingDefaultDays)
	set(domain.TaskRepotting, cfg.RepottingDefaultDays)
	set(domain.TaskVitamins, cfg.VitaminsDefaultDays)
	set(domain.TaskInsecticide, cfg.InsecticideDefaultDays)
	return d
}

// Detail is the full plant view: the plant, its group and every configured
// frequency row.
type Detail struct {
	Plant       domain.Plant
	Group       domain.PlantGroup
	Frequencies []domain.TaskFrequency
}
