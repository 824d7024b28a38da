package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
)

// RequireAdmin requires the owner or manager role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !jwt.RoleFromContext(r.Context()).IsAdmin() {
			response.HandleError(w, jwt.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
