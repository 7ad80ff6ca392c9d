package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/internal/service/group"
)

// groupService defines the minimal interface needed by GroupHandler.
type groupService interface {
	CreateGroup(ctx context.Context, input group.CreateGroupInput) (*domain.PlantGroup, error)
	RenameGroup(ctx context.Context, input group.RenameGroupInput) (*domain.PlantGroup, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.GroupWithCount, error)
	ListGroups(ctx context.Context, input group.ListGroupsInput) ([]domain.GroupWithCount, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// GroupHandler serves group REST endpoints.
type GroupHandler struct {
	svc groupService
	log *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(svc groupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: logger.With("handler", "group")}
}

type groupRequest struct {
	Name string `json:"name"`
}

type groupResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LivingPlants *int   `json:"livingPlants,omitempty"`
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateGroup(r.Context(), group.CreateGroupInput{Name: req.Name})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, groupResponse{ID: created.ID.String(), Name: created.Name})
}

// Rename handles PUT /groups/{id}.
func (h *GroupHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	renamed, err := h.svc.RenameGroup(r.Context(), group.RenameGroupInput{ID: id, Name: req.Name})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, groupResponse{ID: renamed.ID.String(), Name: renamed.Name})
}

// Get handles GET /groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	g, err := h.svc.GetGroup(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(*g))
}

// List handles GET /groups?sort=&order=.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groups, err := h.svc.ListGroups(r.Context(), group.ListGroupsInput{
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": items})
}

// Delete handles DELETE /groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteGroup(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toGroupResponse(g domain.GroupWithCount) groupResponse {
	count := g.LivingPlants
	return groupResponse{
		ID:           g.PlantGroup.ID.String(),
		Name:         g.PlantGroup.Name,
		LivingPlants: &count,
	}
}
