package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const KVTableSchema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT NOT NULL PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	KVTableSchema,
}

type Settings struct {
	DbPath string
}

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// NewDB opens the database and applies the schema.
func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	db, err := openDB("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", settings.DbPath, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return db, nil
}

type txKey struct{}

func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
