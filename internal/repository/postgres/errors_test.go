package postgres

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsPgNoRowsError(t *testing.T) {
	if !IsPgNoRowsError(pgx.ErrNoRows) {
		t.Error("pgx.ErrNoRows not recognized")
	}
	if !IsPgNoRowsError(fmt.Errorf("query: %w", pgx.ErrNoRows)) {
		t.Error("wrapped pgx.ErrNoRows not recognized")
	}
	if IsPgNoRowsError(errors.New("boom")) {
		t.Error("unrelated error recognized as no-rows")
	}
}

func TestIsPgUndefinedTableError(t *testing.T) {
	undefined := &pgconn.PgError{Code: "42P01", Message: `relation "dev_api_keys" does not exist`}

	if !IsPgUndefinedTableError(undefined) {
		t.Error("42P01 not recognized")
	}
	if !IsPgUndefinedTableError(fmt.Errorf("resolve api key: %w", undefined)) {
		t.Error("wrapped 42P01 not recognized")
	}
	if IsPgUndefinedTableError(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation recognized as undefined table")
	}
	if IsPgUndefinedTableError(errors.New("boom")) {
		t.Error("plain error recognized as undefined table")
	}
}

func TestLogIfMissingTable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logIfMissingTable(logger, errors.New("connection refused"), "dev_api_keys")
	if buf.Len() != 0 {
		t.Errorf("unrelated error logged: %s", buf.String())
	}

	logIfMissingTable(logger, &pgconn.PgError{Code: "42P01"}, "dev_api_keys")
	out := buf.String()
	if !strings.Contains(out, "TABLE_PREFIX") || !strings.Contains(out, "dev_api_keys") {
		t.Errorf("missing-table log lacks prefix diagnosis: %s", out)
	}
}
