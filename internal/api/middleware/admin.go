package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Remblej/Game-of-Space-and-Time/internal/api/apierr"
)

// AdminTokenHeader carries the operator credential
const AdminTokenHeader = "X-Admin-Token"

// Admin guards operator endpoints. The configured credential is a bcrypt
// hash of the token; callers present the raw token in the X-Admin-Token
// header. When no hash is configured the endpoints are disabled outright.
func Admin(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				apierr.WriteError(w, apierr.NewForbiddenError("Admin endpoints are disabled"))
				return
			}

			token := r.Header.Get(AdminTokenHeader)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				logger.Warn("admin auth failed",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				apierr.WriteError(w, apierr.NewForbiddenError("Invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
