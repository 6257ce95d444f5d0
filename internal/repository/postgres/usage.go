package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docaura/backend/internal/domain/repositories"
)

// PostgresUsageRepository implements the UsageRepository interface.
//
// Both writes are single-statement atomic increments (SET x = x + 1), never
// read-modify-write in application code: concurrent requests on the same
// key may each be admitted once against a stale quota read, but no
// increment is ever lost.
type PostgresUsageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(config *RepositoryConfig) repositories.UsageRepository {
	return &PostgresUsageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// RecordKeyUse stamps last_used_at and increments the key's call counter
func (r *PostgresUsageRepository) RecordKeyUse(ctx context.Context, keyID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET last_used_at = now(), calls_count = calls_count + 1
		WHERE id = $1
	`, r.tables.APIKeys)

	if _, err := r.pool.Exec(ctx, query, keyID); err != nil {
		logIfMissingTable(r.logger, err, r.tables.APIKeys)
		return fmt.Errorf("record key use: %w", err)
	}
	return nil
}

// IncrementAPICalls adds one to the subscription's metered call counter
func (r *PostgresUsageRepository) IncrementAPICalls(ctx context.Context, organizationID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET api_calls_used = api_calls_used + 1, updated_at = now()
		WHERE organization_id = $1
	`, r.tables.Subscriptions)

	if _, err := r.pool.Exec(ctx, query, organizationID); err != nil {
		logIfMissingTable(r.logger, err, r.tables.Subscriptions)
		return fmt.Errorf("increment api calls: %w", err)
	}
	return nil
}
