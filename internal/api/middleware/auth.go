// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/devsign-cl/appointment-service/internal/api/handlers"
)

const (
	headerUserID     = "X-User-ID"
	headerBusinessID = "X-Business-ID"
	headerUserRole   = "X-User-Role"

	roleSuperuser = "superuser"
)

const (
	msgMissingAuth = "faltan cabeceras de autenticación"
	msgInvalidAuth = "cabeceras de autenticación inválidas"
)

type scopeKey struct{}

// Scope is the caller identity resolved from the auth headers.
// The gateway in front of this service validates the session and injects
// the headers; this middleware only parses them.
type Scope struct {
	UserID     int64
	BusinessID int64
	Superuser  bool
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth parses the identity headers and stores the scope in the request
// context. Superusers may omit the business header.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDRaw := r.Header.Get(headerUserID)
			if userIDRaw == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, headerUserID)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
				return
			}

			userID, err := strconv.ParseInt(userIDRaw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerUserID, userIDRaw)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidAuth)
				return
			}

			scope := Scope{
				UserID:    userID,
				Superuser: r.Header.Get(headerUserRole) == roleSuperuser,
			}

			if businessIDRaw := r.Header.Get(headerBusinessID); businessIDRaw != "" {
				businessID, err := strconv.ParseInt(businessIDRaw, 10, 64)
				if err != nil || businessID <= 0 {
					logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerBusinessID, businessIDRaw)
					handlers.RespondError(w, http.StatusUnauthorized, msgInvalidAuth)
					return
				}
				scope.BusinessID = businessID
			}

			if scope.BusinessID == 0 && !scope.Superuser {
				logger.Warn("%s %s - user id=%d has no business scope", r.Method, r.URL.Path, userID)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingAuth)
				return
			}

			ctx := context.WithValue(r.Context(), scopeKey{}, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFromContext returns the scope stored by Auth
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(Scope)
	return scope, ok
}
