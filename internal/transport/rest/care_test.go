package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/internal/service/care"
)

type mockCareService struct {
	ListOverdueFunc        func(ctx context.Context, now time.Time) ([]domain.OverdueRecord, error)
	OverduePlantCountFunc  func(ctx context.Context, now time.Time) (int, error)
	PerformTasksFunc       func(ctx context.Context, input care.PerformTasksInput) (int, error)
	ListHistoryFunc        func(ctx context.Context, input care.ListHistoryInput) ([]domain.HistoryRecord, error)
	UpdateLogTimestampFunc func(ctx context.Context, input care.UpdateLogTimestampInput) (*domain.CareLogEntry, error)
	DeleteLogEntryFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCareService) ListOverdue(ctx context.Context, now time.Time) ([]domain.OverdueRecord, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, now)
	}
	return nil, nil
}

func (m *mockCareService) OverduePlantCount(ctx context.Context, now time.Time) (int, error) {
	if m.OverduePlantCountFunc != nil {
		return m.OverduePlantCountFunc(ctx, now)
	}
	return 0, nil
}

func (m *mockCareService) PerformTasks(ctx context.Context, input care.PerformTasksInput) (int, error) {
	if m.PerformTasksFunc != nil {
		return m.PerformTasksFunc(ctx, input)
	}
	return 0, nil
}

func (m *mockCareService) ListHistory(ctx context.Context, input care.ListHistoryInput) ([]domain.HistoryRecord, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockCareService) UpdateLogTimestamp(ctx context.Context, input care.UpdateLogTimestampInput) (*domain.CareLogEntry, error) {
	if m.UpdateLogTimestampFunc != nil {
		return m.UpdateLogTimestampFunc(ctx, input)
	}
	return &domain.CareLogEntry{ID: input.ID, PerformedAt: input.PerformedAt}, nil
}

func (m *mockCareService) DeleteLogEntry(ctx context.Context, id uuid.UUID) error {
	if m.DeleteLogEntryFunc != nil {
		return m.DeleteLogEntryFunc(ctx, id)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func overdueFixture() []domain.OverdueRecord {
	return []domain.OverdueRecord{
		{
			Plant:     domain.Plant{ID: uuid.New(), Name: "Monstera"},
			Group:     domain.PlantGroup{ID: uuid.New(), Name: "Living room"},
			TaskType:  domain.TaskWatering,
			DaysSince: 9,
		},
		{
			Plant:     domain.Plant{ID: uuid.New(), Name: "Aloe"},
			Group:     domain.PlantGroup{ID: uuid.New(), Name: "Kitchen"},
			TaskType:  domain.TaskFertilizing,
			DaysSince: 31,
		},
		{
			Plant:     domain.Plant{ID: uuid.New(), Name: "Ficus"},
			Group:     domain.PlantGroup{ID: uuid.New(), Name: "Bedroom"},
			TaskType:  domain.TaskWatering,
			DaysSince: 14,
		},
	}
}

func decodeOverdueNames(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()

	var resp struct {
		Overdue []struct {
			Plant struct {
				Name string `json:"name"`
			} `json:"plant"`
			DaysSince int `json:"daysSince"`
		} `json:"overdue"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	names := make([]string, 0, len(resp.Overdue))
	for _, item := range resp.Overdue {
		names = append(names, item.Plant.Name)
	}
	return names
}

func TestOverdue_DefaultSortsByDaysDesc(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		ListOverdueFunc: func(_ context.Context, _ time.Time) ([]domain.OverdueRecord, error) {
			return overdueFixture(), nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue", nil)
	rec := httptest.NewRecorder()

	h.Overdue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	names := decodeOverdueNames(t, rec)
	want := []string{"Aloe", "Ficus", "Monstera"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q (full order %v)", i, want[i], names[i], names)
		}
	}
}

func TestOverdue_SortByPlantName(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		ListOverdueFunc: func(_ context.Context, _ time.Time) ([]domain.OverdueRecord, error) {
			return overdueFixture(), nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue?sort=plant", nil)
	rec := httptest.NewRecorder()

	h.Overdue(rec, req)

	names := decodeOverdueNames(t, rec)
	want := []string{"Aloe", "Ficus", "Monstera"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestOverdue_SortDescendingPrefix(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		ListOverdueFunc: func(_ context.Context, _ time.Time) ([]domain.OverdueRecord, error) {
			return overdueFixture(), nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue?sort=-plant", nil)
	rec := httptest.NewRecorder()

	h.Overdue(rec, req)

	names := decodeOverdueNames(t, rec)
	want := []string{"Monstera", "Ficus", "Aloe"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestOverdue_UnknownSortKey(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		ListOverdueFunc: func(_ context.Context, _ time.Time) ([]domain.OverdueRecord, error) {
			return overdueFixture(), nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue?sort=height", nil)
	rec := httptest.NewRecorder()

	h.Overdue(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestOverdue_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		ListOverdueFunc: func(_ context.Context, _ time.Time) ([]domain.OverdueRecord, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue", nil)
	rec := httptest.NewRecorder()

	h.Overdue(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestOverdueSummary(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		OverduePlantCountFunc: func(_ context.Context, _ time.Time) (int, error) {
			return 5, nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/overdue/summary", nil)
	rec := httptest.NewRecorder()

	h.OverdueSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["plantsNeedingCare"] != 5 {
		t.Errorf("expected plantsNeedingCare 5, got %d", resp["plantsNeedingCare"])
	}
}

func TestPerformTasks_DecodesRequest(t *testing.T) {
	t.Parallel()

	plantID := uuid.New()
	var got care.PerformTasksInput
	svc := &mockCareService{
		PerformTasksFunc: func(_ context.Context, input care.PerformTasksInput) (int, error) {
			got = input
			return 2, nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	body := `{"taskTypes":["WATERING","FERTILIZING"],"plantIds":["` + plantID.String() + `"],"at":"2026-08-20T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/care/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PerformTasks(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(got.TaskTypes) != 2 || got.TaskTypes[0] != domain.TaskWatering {
		t.Errorf("unexpected task types: %v", got.TaskTypes)
	}
	if len(got.PlantIDs) != 1 || got.PlantIDs[0] != plantID {
		t.Errorf("unexpected plant ids: %v", got.PlantIDs)
	}
	if got.At == nil || !got.At.Equal(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected at: %v", got.At)
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["entriesCreated"] != 2 {
		t.Errorf("expected entriesCreated 2, got %d", resp["entriesCreated"])
	}
}

func TestPerformTasks_InvalidPlantID(t *testing.T) {
	t.Parallel()

	h := NewCareHandler(&mockCareService{}, testLogger())

	body := `{"taskTypes":["WATERING"],"plantIds":["not-a-uuid"]}`
	req := httptest.NewRequest(http.MethodPost, "/care/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PerformTasks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPerformTasks_InvalidTimestamp(t *testing.T) {
	t.Parallel()

	h := NewCareHandler(&mockCareService{}, testLogger())

	body := `{"taskTypes":["WATERING"],"plantIds":["` + uuid.NewString() + `"],"at":"yesterday"}`
	req := httptest.NewRequest(http.MethodPost, "/care/tasks", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.PerformTasks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPerformTasks_ValidationErrorFromService(t *testing.T) {
	t.Parallel()

	svc := &mockCareService{
		PerformTasksFunc: func(_ context.Context, _ care.PerformTasksInput) (int, error) {
			return 0, domain.NewValidationError("taskTypes", "required")
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/care/tasks", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.PerformTasks(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHistory_PassesQueryParams(t *testing.T) {
	t.Parallel()

	var got care.ListHistoryInput
	svc := &mockCareService{
		ListHistoryFunc: func(_ context.Context, input care.ListHistoryInput) ([]domain.HistoryRecord, error) {
			got = input
			return []domain.HistoryRecord{
				{
					CareLogEntry: domain.CareLogEntry{
						ID:          uuid.New(),
						PlantID:     uuid.New(),
						TaskType:    domain.TaskWatering,
						PerformedAt: time.Now(),
					},
					PlantName: "Monstera",
					GroupName: "Living room",
				},
			}, nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/care/history?search=monstera&window=week", nil)
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got.Search != "monstera" {
		t.Errorf("expected search 'monstera', got %q", got.Search)
	}
	if got.Window != care.WindowWeek {
		t.Errorf("expected window week, got %q", got.Window)
	}

	var resp struct {
		History []struct {
			TaskLabel string `json:"taskLabel"`
		} `json:"history"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.History) != 1 || resp.History[0].TaskLabel != "Watered" {
		t.Errorf("unexpected history payload: %+v", resp.History)
	}
}

func TestUpdateHistoryEntry(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	svc := &mockCareService{}
	h := NewCareHandler(svc, testLogger())

	body := `{"performedAt":"2026-08-10T08:30:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/care/history/"+entryID.String(), strings.NewReader(body))
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.UpdateHistoryEntry(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID          string `json:"id"`
		PerformedAt string `json:"performedAt"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != entryID.String() {
		t.Errorf("expected id %s, got %s", entryID, resp.ID)
	}
	if resp.PerformedAt != "2026-08-10T08:30:00Z" {
		t.Errorf("unexpected performedAt: %s", resp.PerformedAt)
	}
}

func TestUpdateHistoryEntry_BadTimestamp(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	h := NewCareHandler(&mockCareService{}, testLogger())

	req := httptest.NewRequest(http.MethodPut, "/care/history/"+entryID.String(), strings.NewReader(`{"performedAt":"last tuesday"}`))
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.UpdateHistoryEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestDeleteHistoryEntry(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	var deleted uuid.UUID
	svc := &mockCareService{
		DeleteLogEntryFunc: func(_ context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/care/history/"+entryID.String(), nil)
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.DeleteHistoryEntry(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if deleted != entryID {
		t.Errorf("expected delete of %s, got %s", entryID, deleted)
	}
}

func TestDeleteHistoryEntry_NotFound(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	svc := &mockCareService{
		DeleteLogEntryFunc: func(_ context.Context, _ uuid.UUID) error {
			return domain.ErrNotFound
		},
	}
	h := NewCareHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/care/history/"+entryID.String(), nil)
	req.SetPathValue("id", entryID.String())
	rec := httptest.NewRecorder()

	h.DeleteHistoryEntry(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
