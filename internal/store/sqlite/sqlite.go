// Package sqlite implements the bookkeeping stores on a local SQLite database.
// Instants are stored as UTC unix milliseconds so range filters compare integers.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/store"
)

const MemoryPath = ":memory:"

//go:embed schema.sql
var schema string

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if path == MemoryPath {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// NewSet returns every store backed by db.
func NewSet(db *sql.DB) *store.Set {
	return &store.Set{
		BankAccounts: NewBankAccountStore(db),
		Categories:   NewCategoryStore(db),
		Transactions: NewTransactionStore(db),
		Users:        NewUserStore(db),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// toUnix stores instants as unix milliseconds, which covers every year the
// API accepts. Sub-millisecond precision is dropped.
func toUnix(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromUnix(n int64) time.Time {
	return time.UnixMilli(n).UTC()
}

// updateSet accumulates the SET clause of a partial update.
type updateSet struct {
	clauses []string
	args    []any
}

func (u *updateSet) add(column string, value any) {
	u.clauses = append(u.clauses, column+" = ?")
	u.args = append(u.args, value)
}

// exec runs an UPDATE or DELETE scoped to (id, uid) and reports a miss as notFound.
func exec(ctx context.Context, db *sql.DB, op, notFound, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return errs.NewDatabaseError(op, "failed to "+op+" record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.NewDatabaseError(op, "failed to read affected rows", err)
	}
	if n == 0 {
		return errs.NewNotFoundError(notFound)
	}
	return nil
}
