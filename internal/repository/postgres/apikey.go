package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
	"github.com/docaura/backend/internal/domain/repositories"
)

// PostgresAPIKeyRepository implements the APIKeyRepository interface
type PostgresAPIKeyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(config *RepositoryConfig) repositories.APIKeyRepository {
	return &PostgresAPIKeyRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ResolveByHash looks up the unique active key by hash and joins the owning
// organization and its current subscription in a single round trip, so the
// plan and quota gates see one consistent snapshot.
func (r *PostgresAPIKeyRepository) ResolveByHash(ctx context.Context, keyHash string) (*models.Identity, error) {
	query := fmt.Sprintf(`
		SELECT k.id, k.organization_id, k.name, k.key_prefix, k.is_active,
		       k.calls_count, k.last_used_at, k.created_at,
		       o.name,
		       s.id, s.plan, s.api_calls_used, s.api_calls_limit
		FROM %s k
		JOIN %s o ON o.id = k.organization_id
		JOIN %s s ON s.organization_id = k.organization_id
		WHERE k.key_hash = $1 AND k.is_active = TRUE
	`, r.tables.APIKeys, r.tables.Organizations, r.tables.Subscriptions)

	var ident models.Identity
	err := r.pool.QueryRow(ctx, query, keyHash).Scan(
		&ident.Key.ID,
		&ident.Key.OrganizationID,
		&ident.Key.Name,
		&ident.Key.KeyPrefix,
		&ident.Key.IsActive,
		&ident.Key.CallsCount,
		&ident.Key.LastUsedAt,
		&ident.Key.CreatedAt,
		&ident.Organization.Name,
		&ident.Subscription.ID,
		&ident.Subscription.Plan,
		&ident.Subscription.APICallsUsed,
		&ident.Subscription.APICallsLimit,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Missing and inactive must be indistinguishable upstream
			return nil, fmt.Errorf("api key: %w", domain.ErrNotFound)
		}
		logIfMissingTable(r.logger, err, r.tables.APIKeys)
		return nil, fmt.Errorf("resolve api key: %w", err)
	}

	ident.Organization.ID = ident.Key.OrganizationID
	return &ident, nil
}
