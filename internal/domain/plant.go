package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultGroupName is the distinguished group every plant falls back to.
// It is created lazily on first use and can never be deleted.
const DefaultGroupName = "Uncategorized"

// PlantGroup is a user-defined category of plants.
// Group names are unique case-insensitively.
type PlantGroup struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDefault reports whether this is the protected default group.
func (g PlantGroup) IsDefault() bool {
	return strings.EqualFold(g.Name, DefaultGroupName)
}

// Plant is a living or dead plant. Names are unique among living plants
// only; once Alive flips to false it never flips back.
type Plant struct {
	ID         uuid.UUID
	Name       string
	GroupID    uuid.UUID
	AcquiredOn time.Time
	Notes      *string
	Alive      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GraveyardEntry records the death of a plant. Exactly one per dead plant.
type GraveyardEntry struct {
	ID          uuid.UUID
	PlantID     uuid.UUID
	DateOfDeath time.Time
	Cause       CauseOfDeath
}

// PlantWithGroup is a plant joined with its group, the shape listings and
// the overdue engine consume.
type PlantWithGroup struct {
	Plant
	Group PlantGroup
}

// GroupWithCount is a group plus how many living plants it currently holds.
type GroupWithCount struct {
	PlantGroup
	LivingPlants int
}

// GraveyardRecord is a graveyard entry joined with the dead plant's name
// and former group name.
type GraveyardRecord struct {
	GraveyardEntry
	PlantName string
	GroupName string
}
