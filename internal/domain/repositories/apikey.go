package repositories

import (
	"context"

	"github.com/docaura/backend/internal/domain/models"
)

// APIKeyRepository resolves presented API keys to their owning tenant.
type APIKeyRepository interface {
	// ResolveByHash looks up the unique active key record by its SHA-256
	// hash and joins the owning organization and current subscription in
	// the same round trip. Returns domain.ErrNotFound when no active key
	// matches; callers must not distinguish missing from inactive.
	ResolveByHash(ctx context.Context, keyHash string) (*models.Identity, error)
}
