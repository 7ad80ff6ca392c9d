package group

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
)

// CreateGroupInput holds the parameters for creating a group.
type CreateGroupInput struct {
	Name string
}

// Validate checks all fields and collects all errors.
func (i CreateGroupInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RenameGroupInput holds the parameters for renaming a group.
type RenameGroupInput struct {
	ID   uuid.UUID
	Name string
}

// Validate checks all fields and collects all errors.
func (i RenameGroupInput) Validate() error {
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

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListGroupsInput orders the group listing.
type ListGroupsInput struct {
	SortBy    string
	SortOrder string
}

// Validate checks the sort parameters.
func (i ListGroupsInput) Validate() error {
	var errs []domain.FieldError

	switch i.SortBy {
	case "", "name", "plant_count":
	default:
		errs = append(errs, domain.FieldError{Field: "sort_by", Message: "must be name or plant_count"})
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
