package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	APIKeys          string
	Organizations    string
	Subscriptions    string
	Documents        string
	DocumentAnalyses string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		APIKeys:          fmt.Sprintf("%sapi_keys", prefix),
		Organizations:    fmt.Sprintf("%sorganizations", prefix),
		Subscriptions:    fmt.Sprintf("%ssubscriptions", prefix),
		Documents:        fmt.Sprintf("%sdocuments", prefix),
		DocumentAnalyses: fmt.Sprintf("%sdocument_analyses", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic
// PgBouncer compatibility.
//
// By default pgx uses prepared statements (QueryExecModeCacheStatement),
// but PgBouncer in transaction pooling mode (port 6543 on Supabase) does
// not support them, causing "prepared statement already exists" errors.
// When port 6543 is detected, QueryExecModeCacheDescribe is used instead:
// it keeps the extended protocol but caches statement descriptions rather
// than prepared statements, which PgBouncer tolerates. An explicit
// ?default_query_exec_mode= parameter in the connection string takes
// precedence over the auto-detection.
//
// Dynamic table prefixes (dev_, test_, prod_) via fmt.Sprintf are safe with
// prepared statements because the SQL string is interpolated before being
// sent; each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
