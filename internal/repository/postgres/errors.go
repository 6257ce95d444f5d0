package postgres

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgUndefinedTableError checks if error is an undefined table error,
// which indicates a misconfigured table prefix rather than bad input
func IsPgUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 42P01 = undefined_table
		return pgErr.Code == "42P01"
	}
	return false
}

// logIfMissingTable flags an undefined-table failure. The query text is
// built from the configured prefix, so this class of error means the
// prefix does not match the deployed schema, not that the input was bad.
func logIfMissingTable(logger *slog.Logger, err error, table string) {
	if IsPgUndefinedTableError(err) {
		logger.Error("table does not exist, check TABLE_PREFIX",
			"table", table,
			"error", err,
		)
	}
}
