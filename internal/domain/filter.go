package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlantFilter contains filtering/sorting parameters for living-plant listings.
type PlantFilter struct {
	Search    *string // case-insensitive substring on plant or group name
	GroupID   *uuid.UUID
	SortBy    string // name | group | acquired_on
	SortOrder string // asc | desc
}

// GroupFilter contains sorting parameters for group listings.
type GroupFilter struct {
	SortBy    string // name | plant_count
	SortOrder string
}

// HistoryFilter contains filtering parameters for the care history listing.
// Results always come back newest first. Search matches plant or group name;
// TaskTypes widens the match to entries of those types (the caller resolves
// search terms against task labels, which live outside SQL).
type HistoryFilter struct {
	Search    *string
	TaskTypes []TaskType
	Since     *time.Time
}

// GraveyardFilter contains sorting parameters for graveyard listings.
type GraveyardFilter struct {
	SortBy    string // name | cause | date_of_death
	SortOrder string
}
