package middleware

import (
	"net/http"

	"github.com/mkotas/plantarium-backend/internal/domain"
	"github.com/mkotas/plantarium-backend/pkg/ctxutil"
)

// RequireAdmin rejects requests whose context user does not carry the admin
// role. Destructive endpoints (plant deletion, history deletion) sit behind
// it; everything else only needs authentication.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.UserRole(ctxutil.UserRoleFromCtx(r.Context()))
		if !role.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
