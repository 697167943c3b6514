package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/rs/zerolog"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (kv.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &store{db: db, now: time.Now}, nil
}

// Factory opens the database at opts.Path (":memory:" when InMemory).
func Factory(ctx context.Context, opts kv.Options) (kv.Store, error) {
	path := opts.Path
	if opts.InMemory || path == "" {
		path = ":memory:"
	}
	db, err := NewDB(ctx, Settings{DbPath: path})
	if err != nil {
		return nil, err
	}
	return NewStore(db)
}

// conn returns the transaction carried by ctx, if any. Every statement
// must go through it: the pool holds a single connection, so a query on
// s.db while a transaction is open would wait forever.
func (s *store) conn(ctx context.Context) querier {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

// WithinTx commits when fn succeeds and rolls back otherwise. Nested calls
// join the outer transaction.
func (s *store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTransaction(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(WithTransaction(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zerolog.Ctx(ctx).Error().Err(rbErr).Msg("failed to roll back transaction")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.conn(ctx).QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if n == 0 {
		return kv.ErrNotFound
	}
	return nil
}

func (s *store) List(ctx context.Context, prefix string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.conn(ctx).QueryContext(ctx,
		`SELECT key FROM kv_entries WHERE substr(key, 1, ?) = ? ORDER BY key`,
		utf8.RuneCountInString(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close list rows")
		}
	}(rows)

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *store) Close() error {
	return s.db.Close()
}
