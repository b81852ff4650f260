package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/upmpoly/internal/api/apierr"
	"github.com/mcoot/upmpoly/internal/middleware"
)

// AdminTokenHeader carries the admin token; a Bearer token is also accepted
const AdminTokenHeader = "X-Admin-Token"

// Admin guards administrative routes with a token checked against a bcrypt
// hash. An empty hash leaves the routes open.
func Admin(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	if tokenHash == "" {
		logger.Warn("admin token hash not configured, admin routes are open")
	}
	hash := []byte(tokenHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(hash) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
				logger.Warn("admin token rejected",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetRequestID(r.Context())),
				)
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the admin token from the request
func extractToken(r *http.Request) string {
	if token := r.Header.Get(AdminTokenHeader); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
