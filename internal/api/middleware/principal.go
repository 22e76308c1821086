package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/api/presenter"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/core"
	"github.com/pmarkesinis/SEM-Pizzeria-sub001/internal/policy"
)

type principalCtxKey struct{}

// Resolver turns a raw bearer token into a principal, or fails when the
// request carries no valid identity.
type Resolver func(ctx context.Context, rawToken string) (*core.Principal, error)

// BearerToken extracts the token from the Authorization header. The header
// is expected as "<scheme> <token>"; the token is the second
// whitespace-separated segment.
func BearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// PrincipalCtx retrieves the principal resolved for the current request.
// It returns nil when the request is anonymous.
func PrincipalCtx(ctx context.Context) *core.Principal {
	principal, _ := ctx.Value(principalCtxKey{}).(*core.Principal)
	return principal
}

// ResolvePrincipal attempts to resolve a principal from the bearer token and
// attaches it to the request context. It never rejects by itself: requests
// without a valid identity continue anonymously and the policy table decides.
func ResolvePrincipal(resolve Resolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal, err := resolve(ctx, BearerToken(r))
			if err != nil {
				// sub-reason stays in the logs, the request proceeds anonymously
				next.ServeHTTP(w, r)
				return
			}

			log.Ctx(ctx).Debug().Str("sub", principal.Subject).Msg("principal resolved")
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, principalCtxKey{}, principal)))
		})
	}
}

// EnforcePolicy evaluates every request against the route policy table and
// rejects denied requests with a uniform response that never names the
// failing check.
func EnforcePolicy(table *policy.Table) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalCtx(r.Context())

			switch table.Authorize(r.URL.Path, principal) {
			case policy.Allow:
				next.ServeHTTP(w, r)
			case policy.DenyUnauthenticated:
				presenter.Error(w, r, "authentication required", http.StatusUnauthorized)
			case policy.DenyForbidden:
				presenter.Error(w, r, "access denied", http.StatusForbidden)
			}
		})
	}
}
