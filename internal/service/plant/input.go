package plant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// CreatePlantInput holds the parameters for registering a new plant.
//
// Frequencies lists the care intervals the user set explicitly. A task
// missing from the map falls back to the configured default; a task mapped
// to nil is explicitly unscheduled and gets no frequency row.
type CreatePlantInput struct {
	Name        string
	GroupID     *uuid.UUID
	AcquiredOn  time.Time
	Notes       *string
	Frequencies map[domain.TaskType]*int
}

// Validate checks all fields and collects all errors.
func (i CreatePlantInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if i.AcquiredOn.IsZero() {
		errs = append(errs, domain.FieldError{Field: "acquired_on", Message: "required"})
	}

	if i.Notes != nil && len(*i.Notes) > 2000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}

	errs = append(errs, validateFrequencies(i.Frequencies)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdatePlantInput holds the parameters for editing a plant.
//
// Frequencies is the full desired schedule: a task mapped to an interval is
// upserted, and every other task's frequency row is deleted. Clearing a
// field on the edit form therefore removes its schedule.
type UpdatePlantInput struct {
	ID          uuid.UUID
	Name        string
	GroupID     *uuid.UUID
	AcquiredOn  time.Time
	Notes       *string
	Frequencies map[domain.TaskType]*int
}

// Validate checks all fields and collects all errors.
func (i UpdatePlantInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if i.AcquiredOn.IsZero() {
		errs = append(errs, domain.FieldError{Field: "acquired_on", Message: "required"})
	}

	if i.Notes != nil && len(*i.Notes) > 2000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}

	errs = append(errs, validateFrequencies(i.Frequencies)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateFrequencies(freqs map[domain.TaskType]*int) []domain.FieldError {
	var errs []domain.FieldError
	for t, days := range freqs {
		if !t.IsValid() {
			errs = append(errs, domain.FieldError{Field: "frequencies", Message: "unknown task type: " + string(t)})
		}
		if days != nil && *days < 1 {
			errs = append(errs, domain.FieldError{Field: "frequencies", Message: string(t) + ": interval must be at least 1 day"})
		}
	}
	return errs
}

// ListPlantsInput filters and orders the living plant listing.
type ListPlantsInput struct {
	Search    string
	GroupID   *uuid.UUID
	SortBy    string
	SortOrder string
}

// Validate checks the sort parameters.
func (i ListPlantsInput) Validate() error {
	var errs []domain.FieldError

	switch i.SortBy {
	case "", "name", "group", "acquired_on":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: "must be one of: name, group, acquired_on"})
	}

	switch i.SortOrder {
	case "", "asc", "desc":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListGraveyardInput orders the graveyard listing.
type ListGraveyardInput struct {
	SortBy    string
	SortOrder string
}

// Validate checks the sort parameters.
func (i ListGraveyardInput) Validate() error {
	var errs []domain.FieldError

	switch i.SortBy {
	case "", "name", "cause", "date_of_death":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: "must be one of: name, cause, date_of_death"})
	}

	switch i.SortOrder {
	case "", "asc", "desc":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
