package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/internal/service/plant"
)

// plantService defines the minimal interface needed by PlantHandler.
type plantService interface {
	CreatePlant(ctx context.Context, input plant.CreatePlantInput) (*plant.Detail, error)
	UpdatePlant(ctx context.Context, input plant.UpdatePlantInput) (*plant.Detail, error)
	GetPlant(ctx context.Context, id uuid.UUID) (*plant.Detail, error)
	ListPlants(ctx context.Context, input plant.ListPlantsInput) ([]domain.PlantWithGroup, error)
	DeletePlant(ctx context.Context, id uuid.UUID) error
	MoveToGraveyard(ctx context.Context, plantID uuid.UUID, cause domain.CauseOfDeath) (*domain.GraveyardEntry, error)
	ListGraveyard(ctx context.Context, input plant.ListGraveyardInput) ([]domain.GraveyardRecord, error)
}

// PlantHandler serves plant and graveyard REST endpoints.
type PlantHandler struct {
	svc plantService
	log *slog.Logger
}

// NewPlantHandler creates a PlantHandler.
func NewPlantHandler(svc plantService, logger *slog.Logger) *PlantHandler {
	return &PlantHandler{svc: svc, log: logger.With("handler", "plant")}
}

const dateLayout = "2006-01-02"

type plantRequest struct {
	Name        string          `json:"name"`
	GroupID     *string         `json:"groupId"`
	AcquiredOn  string          `json:"acquiredOn"`
	Notes       *string         `json:"notes"`
	Frequencies map[string]*int `json:"frequencies"`
}

type frequencyResponse struct {
	TaskType    string `json:"taskType"`
	AllowedDays *int   `json:"allowedDays"`
}

type plantResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Group       groupRef            `json:"group"`
	AcquiredOn  string              `json:"acquiredOn"`
	Notes       *string             `json:"notes,omitempty"`
	Alive       bool                `json:"alive"`
	Frequencies []frequencyResponse `json:"frequencies,omitempty"`
}

type groupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type graveyardEntryResponse struct {
	ID          string `json:"id"`
	PlantID     string `json:"plantId"`
	DateOfDeath string `json:"dateOfDeath"`
	Cause       string `json:"cause"`
}

type graveyardRecordResponse struct {
	graveyardEntryResponse
	PlantName string `json:"plantName"`
	GroupName string `json:"groupName"`
}

// Create handles POST /plants.
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodePlantRequest(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.CreatePlant(r.Context(), plant.CreatePlantInput{
		Name:        input.name,
		GroupID:     input.groupID,
		AcquiredOn:  input.acquiredOn,
		Notes:       input.notes,
		Frequencies: input.frequencies,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlantResponse(detail))
}

// Update handles PUT /plants/{id}.
func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	input, ok := h.decodePlantRequest(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.UpdatePlant(r.Context(), plant.UpdatePlantInput{
		ID:          id,
		Name:        input.name,
		GroupID:     input.groupID,
		AcquiredOn:  input.acquiredOn,
		Notes:       input.notes,
		Frequencies: input.frequencies,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlantResponse(detail))
}

// Get handles GET /plants/{id}.
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.GetPlant(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlantResponse(detail))
}

// List handles GET /plants?search=&group=&sort=&order=.
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := plant.ListPlantsInput{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
	}
	if g := q.Get("group"); g != "" {
		groupID, err := uuid.Parse(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}
		input.GroupID = &groupID
	}

	plants, err := h.svc.ListPlants(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]plantResponse, 0, len(plants))
	for _, p := range plants {
		items = append(items, plantResponse{
			ID:         p.Plant.ID.String(),
			Name:       p.Plant.Name,
			Group:      groupRef{ID: p.Group.ID.String(), Name: p.Group.Name},
			AcquiredOn: p.Plant.AcquiredOn.Format(dateLayout),
			Notes:      p.Plant.Notes,
			Alive:      p.Plant.Alive,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"plants": items})
}

// Delete handles DELETE /plants/{id}.
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePlant(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Bury handles POST /plants/{id}/graveyard.
func (h *PlantHandler) Bury(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Cause string `json:"cause"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	entry, err := h.svc.MoveToGraveyard(r.Context(), id, domain.CauseOfDeath(req.Cause))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if entry == nil {
		// Already dead; nothing changed.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, toGraveyardEntryResponse(*entry))
}

// Graveyard handles GET /graveyard?sort=&order=.
func (h *PlantHandler) Graveyard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.svc.ListGraveyard(r.Context(), plant.ListGraveyardInput{
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]graveyardRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, graveyardRecordResponse{
			graveyardEntryResponse: toGraveyardEntryResponse(rec.GraveyardEntry),
			PlantName:              rec.PlantName,
			GroupName:              rec.GroupName,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"graveyard": items})
}

type decodedPlantRequest struct {
	name        string
	groupID     *uuid.UUID
	acquiredOn  time.Time
	notes       *string
	frequencies map[domain.TaskType]*int
}

func (h *PlantHandler) decodePlantRequest(w http.ResponseWriter, r *http.Request) (decodedPlantRequest, bool) {
	var req plantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return decodedPlantRequest{}, false
	}

	out := decodedPlantRequest{name: req.Name, notes: req.Notes}

	if req.GroupID != nil {
		groupID, err := uuid.Parse(*req.GroupID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return decodedPlantRequest{}, false
		}
		out.groupID = &groupID
	}

	if req.AcquiredOn != "" {
		acquiredOn, err := time.Parse(dateLayout, req.AcquiredOn)
		if err != nil {
			writeError(w, http.StatusBadRequest, "acquiredOn must be YYYY-MM-DD")
			return decodedPlantRequest{}, false
		}
		out.acquiredOn = acquiredOn
	}

	if req.Frequencies != nil {
		out.frequencies = make(map[domain.TaskType]*int, len(req.Frequencies))
		for task, days := range req.Frequencies {
			out.frequencies[domain.TaskType(task)] = days
		}
	}

	return out, true
}

func toPlantResponse(d *plant.Detail) plantResponse {
	freqs := make([]frequencyResponse, 0, len(d.Frequencies))
	for _, f := range d.Frequencies {
		freqs = append(freqs, frequencyResponse{
			TaskType:    f.TaskType.String(),
			AllowedDays: f.AllowedDays,
		})
	}
	return plantResponse{
		ID:          d.Plant.ID.String(),
		Name:        d.Plant.Name,
		Group:       groupRef{ID: d.Group.ID.String(), Name: d.Group.Name},
		AcquiredOn:  d.Plant.AcquiredOn.Format(dateLayout),
		Notes:       d.Plant.Notes,
		Alive:       d.Plant.Alive,
		Frequencies: freqs,
	}
}

func toGraveyardEntryResponse(e domain.GraveyardEntry) graveyardEntryResponse {
	return graveyardEntryResponse{
		ID:          e.ID.String(),
		PlantID:     e.PlantID.String(),
		DateOfDeath: e.DateOfDeath.Format(dateLayout),
		Cause:       e.Cause.String(),
	}
}

// pathUUID parses the named path segment as a UUID, writing a 400 on
// failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
