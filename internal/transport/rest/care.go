package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/internal/service/care"
)

// careService defines the minimal interface needed by CareHandler.
type careService interface {
	ListOverdue(ctx context.Context, now time.Time) ([]domain.OverdueRecord, error)
	OverduePlantCount(ctx context.Context, now time.Time) (int, error)
	PerformTasks(ctx context.Context, input care.PerformTasksInput) (int, error)
	ListHistory(ctx context.Context, input care.ListHistoryInput) ([]domain.HistoryRecord, error)
	UpdateLogTimestamp(ctx context.Context, input care.UpdateLogTimestampInput) (*domain.CareLogEntry, error)
	DeleteLogEntry(ctx context.Context, id uuid.UUID) error
}

// CareHandler serves the overdue, task performance and history endpoints.
type CareHandler struct {
	svc careService
	log *slog.Logger
}

// NewCareHandler creates a CareHandler.
func NewCareHandler(svc careService, logger *slog.Logger) *CareHandler {
	return &CareHandler{svc: svc, log: logger.With("handler", "care")}
}

type overdueResponse struct {
	Plant     groupRef `json:"plant"`
	Group     groupRef `json:"group"`
	TaskType  string   `json:"taskType"`
	TaskLabel string   `json:"taskLabel"`
	DaysSince int      `json:"daysSince"`
}

type performTasksRequest struct {
	TaskTypes []string `json:"taskTypes"`
	PlantIDs  []string `json:"plantIds"`
	At        *string  `json:"at"`
}

type historyEntryResponse struct {
	ID          string `json:"id"`
	PlantID     string `json:"plantId"`
	PlantName   string `json:"plantName,omitempty"`
	GroupName   string `json:"groupName,omitempty"`
	TaskType    string `json:"taskType"`
	TaskLabel   string `json:"taskLabel"`
	PerformedAt string `json:"performedAt"`
}

// Overdue handles GET /care/overdue?sort=. The engine emits records
// unordered; sorting is presentation work and happens here. A "-" prefix
// reverses the order, e.g. sort=-days.
func (h *CareHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListOverdue(r.Context(), time.Now())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if !sortOverdue(records, r.URL.Query().Get("sort")) {
		writeError(w, http.StatusBadRequest, "sort must be one of: plant, group, task, days")
		return
	}

	items := make([]overdueResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, overdueResponse{
			Plant:     groupRef{ID: rec.Plant.ID.String(), Name: rec.Plant.Name},
			Group:     groupRef{ID: rec.Group.ID.String(), Name: rec.Group.Name},
			TaskType:  rec.TaskType.String(),
			TaskLabel: rec.TaskType.Label(),
			DaysSince: rec.DaysSince,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"overdue": items})
}

// OverdueSummary handles GET /care/overdue/summary.
func (h *CareHandler) OverdueSummary(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.OverduePlantCount(r.Context(), time.Now())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"plantsNeedingCare": count})
}

// PerformTasks handles POST /care/tasks.
func (h *CareHandler) PerformTasks(w http.ResponseWriter, r *http.Request) {
	var req performTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := care.PerformTasksInput{}
	for _, t := range req.TaskTypes {
		input.TaskTypes = append(input.TaskTypes, domain.TaskType(t))
	}
	for _, raw := range req.PlantIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid plant id: "+raw)
			return
		}
		input.PlantIDs = append(input.PlantIDs, id)
	}
	if req.At != nil {
		at, err := time.Parse(time.RFC3339, *req.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, "at must be RFC 3339")
			return
		}
		input.At = &at
	}

	created, err := h.svc.PerformTasks(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"entriesCreated": created})
}

// History handles GET /care/history?search=&window=.
func (h *CareHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.svc.ListHistory(r.Context(), care.ListHistoryInput{
		Search: q.Get("search"),
		Window: care.HistoryWindow(q.Get("window")),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]historyEntryResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, historyEntryResponse{
			ID:          rec.ID.String(),
			PlantID:     rec.PlantID.String(),
			PlantName:   rec.PlantName,
			GroupName:   rec.GroupName,
			TaskType:    rec.TaskType.String(),
			TaskLabel:   rec.TaskType.Label(),
			PerformedAt: rec.PerformedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": items})
}

// UpdateHistoryEntry handles PUT /care/history/{id}.
func (h *CareHandler) UpdateHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		PerformedAt string `json:"performedAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	performedAt, err := time.Parse(time.RFC3339, req.PerformedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "performedAt must be RFC 3339")
		return
	}

	entry, err := h.svc.UpdateLogTimestamp(r.Context(), care.UpdateLogTimestampInput{
		ID:          id,
		PerformedAt: performedAt,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, historyEntryResponse{
		ID:          entry.ID.String(),
		PlantID:     entry.PlantID.String(),
		TaskType:    entry.TaskType.String(),
		TaskLabel:   entry.TaskType.Label(),
		PerformedAt: entry.PerformedAt.Format(time.RFC3339),
	})
}

// DeleteHistoryEntry handles DELETE /care/history/{id}.
func (h *CareHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteLogEntry(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sortOverdue orders records in place by the given key. Ties fall back to
// plant name, then task type, so the output is stable across calls. An
// unknown key returns false; empty input defaults to -days.
func sortOverdue(records []domain.OverdueRecord, key string) bool {
	desc := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")
	if key == "" {
		key, desc = "days", true
	}

	var less func(a, b domain.OverdueRecord) bool
	switch key {
	case "plant":
		less = func(a, b domain.OverdueRecord) bool { return a.Plant.Name < b.Plant.Name }
	case "group":
		less = func(a, b domain.OverdueRecord) bool { return a.Group.Name < b.Group.Name }
	case "task":
		less = func(a, b domain.OverdueRecord) bool { return a.TaskType < b.TaskType }
	case "days":
		less = func(a, b domain.OverdueRecord) bool { return a.DaysSince < b.DaysSince }
	default:
		return false
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if less(a, b) != less(b, a) {
			if desc {
				return less(b, a)
			}
			return less(a, b)
		}
		if a.Plant.Name != b.Plant.Name {
			return a.Plant.Name < b.Plant.Name
		}
		return a.TaskType < b.TaskType
	})
	return true
}
