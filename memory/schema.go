package memory

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/viant/vecmem/vector"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "memories"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// The embedding column declares its dimension through a length check, so a
// vector of any other size fails at INSERT time.
const memoriesSchema = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id         TEXT PRIMARY KEY,
    type       TEXT NOT NULL,
    content    TEXT NOT NULL CHECK (json_valid(content)),
    source     TEXT NOT NULL,
    embedding  BLOB NOT NULL CHECK (length(embedding) = %[2]d),
    tags       TEXT CHECK (tags IS NULL OR json_type(tags) = 'array'),
    confidence REAL NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

const memoriesIndex = `CREATE INDEX IF NOT EXISTS %[1]s_created_at ON %[1]s(created_at);`

// EnsureSchema creates the memories table for embeddings of dim components if
// it does not already exist. An existing table is left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB, table string, dim int) error {
	if db == nil {
		return goerr.New("db is nil")
	}
	if err := validateTable(table); err != nil {
		return err
	}
	if dim <= 0 {
		return goerr.New("embedding dimension must be positive", goerr.V("dim", dim))
	}

	for _, stmt := range []string{
		fmt.Sprintf(memoriesSchema, table, dim*vector.BytesPerDim),
		fmt.Sprintf(memoriesIndex, table),
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to create schema", goerr.V("table", table), goerr.T(ErrStorage))
		}
	}
	return nil
}

// validateTable guards identifiers that are interpolated into SQL.
func validateTable(table string) error {
	if !identifierPattern.MatchString(table) {
		return goerr.New("invalid table name", goerr.V("table", table))
	}
	return nil
}
