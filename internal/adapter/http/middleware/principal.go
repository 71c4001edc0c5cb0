package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
)

// Authentication lives in the upstream gateway; it forwards the verified
// principal in these headers. This service only parses and gates on them.
const (
	headerClientID = "X-Auth-Client-Id"
	headerRole     = "X-Auth-Role"
)

type contextKey struct{}

// Principal extracts the forwarded principal into the request context and
// rejects requests that carry none.
func Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(headerClientID)), 10, 64)
		role := parseRole(r.Header.Get(headerRole))
		if err != nil || clientID <= 0 || role == "" {
			logger.Info("principal middleware unauthenticated request", logger.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, domain.Principal{
			ClientID: clientID,
			Role:     role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the principal's role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			if principal.Role != role {
				logger.Info("principal middleware forbidden request", logger.Fields{
					"method":       r.Method,
					"path":         r.URL.Path,
					"role":         principal.Role,
					"requiredRole": role,
				})
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(contextKey{}).(domain.Principal)
	return principal, ok
}

func parseRole(raw string) domain.Role {
	switch strings.TrimSpace(raw) {
	case string(domain.RoleClient):
		return domain.RoleClient
	case string(domain.RoleManager):
		return domain.RoleManager
	case string(domain.RoleAdministrator):
		return domain.RoleAdministrator
	default:
		return ""
	}
}
