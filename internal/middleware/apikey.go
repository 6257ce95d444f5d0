package middleware

import (
	"log/slog"
	"net/http"

	"github.com/docaura/backend/internal/domain"
	domainSvc "github.com/docaura/backend/internal/domain/services"
	"github.com/docaura/backend/internal/httputil"
)

// APIKeyHeader is the only credential the public API accepts.
const APIKeyHeader = "x-api-key"

// APIKeyAuth authenticates, plan-gates, quota-gates and pre-charges every
// request before it reaches a route. Runs after CORS (so preflights never
// get here) and charges even requests that end up 404ing on an unknown
// route, matching the admission-before-dispatch contract.
func APIKeyAuth(gate domainSvc.Gatekeeper, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawKey := r.Header.Get(APIKeyHeader)
			if rawKey == "" {
				httputil.RespondDomainError(w, &domain.UnauthorizedError{
					Message: "Missing API key",
					Hint:    "Include your API key in the x-api-key header",
				})
				return
			}

			ident, err := gate.Admit(r.Context(), rawKey)
			if err != nil {
				httputil.RespondDomainError(w, err)
				return
			}

			logger.Debug("request admitted",
				"request_id", httputil.GetRequestID(r),
				"key_id", ident.Key.ID,
				"organization_id", ident.Key.OrganizationID,
			)

			next.ServeHTTP(w, httputil.WithIdentity(r, ident))
		})
	}
}
