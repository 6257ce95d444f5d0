package httputil

import (
	"context"
	"net/http"

	"github.com/docaura/backend/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "requestID"
)

// WithIdentity adds the resolved API key identity to the request context
func WithIdentity(r *http.Request, ident *models.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, ident)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the identity from context, returns nil if not found
func GetIdentity(r *http.Request) *models.Identity {
	ident, _ := r.Context().Value(identityKey).(*models.Identity)
	return ident
}

// WithRequestID adds a request correlation ID to the request context
func WithRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, id)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request ID from context, returns empty string if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
