package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

type contextKey int

const (
	ownerIDKey contextKey = iota
	roleKey
)

// ownerFromContext returns the authenticated owner id set by the auth
// middleware. The zero value never occurs on an authenticated route.
func ownerFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(ownerIDKey).(int64)
	return id
}

func roleFromContext(ctx context.Context) model.UserRole {
	role, _ := ctx.Value(roleKey).(model.UserRole)
	return role
}

// requireAdmin rejects authenticated requests whose token does not carry the
// admin role.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if roleFromContext(r.Context()) != model.RoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate verifies the bearer token and threads the owner id into the
// request context. Requests without a valid token never reach a handler.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		claims, err := s.issuer.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger records one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
