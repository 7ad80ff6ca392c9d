package rest

import (
	"net/http"

	"github.com/mkotas/plantarium-backend/internal/transport/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Plants *PlantHandler
	Groups *GroupHandler
	Care   *CareHandler
}

// NewRouter builds the HTTP routing table. All routes share the global
// middleware chain; destructive endpoints additionally require the admin
// role. Authentication itself is enforced inside the services, so the
// router registers handlers directly.
func NewRouter(h Handlers, global middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /auth/register", h.Auth.Register)
	mux.HandleFunc("POST /auth/login", h.Auth.Login)

	mux.HandleFunc("POST /plants", h.Plants.Create)
	mux.HandleFunc("GET /plants", h.Plants.List)
	mux.HandleFunc("GET /plants/{id}", h.Plants.Get)
	mux.HandleFunc("PUT /plants/{id}", h.Plants.Update)
	mux.Handle("DELETE /plants/{id}", middleware.RequireAdmin(http.HandlerFunc(h.Plants.Delete)))
	mux.HandleFunc("POST /plants/{id}/graveyard", h.Plants.Bury)
	mux.HandleFunc("GET /graveyard", h.Plants.Graveyard)

	mux.HandleFunc("POST /groups", h.Groups.Create)
	mux.HandleFunc("GET /groups", h.Groups.List)
	mux.HandleFunc("GET /groups/{id}", h.Groups.Get)
	mux.HandleFunc("PUT /groups/{id}", h.Groups.Rename)
	mux.HandleFunc("DELETE /groups/{id}", h.Groups.Delete)

	mux.HandleFunc("GET /care/overdue", h.Care.Overdue)
	mux.HandleFunc("GET /care/overdue/summary", h.Care.OverdueSummary)
	mux.HandleFunc("POST /care/tasks", h.Care.PerformTasks)
	mux.HandleFunc("GET /care/history", h.Care.History)
	mux.HandleFunc("PUT /care/history/{id}", h.Care.UpdateHistoryEntry)
	mux.Handle("DELETE /care/history/{id}", middleware.RequireAdmin(http.HandlerFunc(h.Care.DeleteHistoryEntry)))

	return global(mux)
}
