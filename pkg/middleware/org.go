package middleware

import (
	"context"
	"net/http"

	"roomly/pkg/logger"
)

const OrgIDKey contextKey = "org_id"

// OrgHeader carries the tenant key resolved by the upstream gateway. How
// the org is authenticated is outside this service; it only scopes queries.
const OrgHeader = "X-Org-ID"

// RequireOrg extracts the org header into the request context and rejects
// requests without one.
func RequireOrg(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orgID := r.Header.Get(OrgHeader)
			if orgID == "" {
				log.Warn("Missing org header",
					"request_id", requestIDFrom(r),
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"X-Org-ID header is required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), OrgIDKey, orgID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrgFrom returns the org id stored by RequireOrg, or "" when absent.
func OrgFrom(ctx context.Context) string {
	if v := ctx.Value(OrgIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
