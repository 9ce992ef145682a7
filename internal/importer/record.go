package importer

import (
	"context"
	"fmt"
)

// Record is a fully validated entity ready to persist. A Record is never
// constructed unless every field of its source line passed validation.
type Record interface {
	Key() string
}

// Target describes one import domain: how many raw fields a line needs and
// how to turn them into a validated record. Parse applies the field
// validators in the target's fixed field order and stops at the first
// failure.
type Target interface {
	Name() string
	Label() string
	MinFields() int
	Parse(fields []string) (Record, *FieldError)
}

// Store persists records inside one batch transaction. Exists is a read-only
// advisory lookup; an error from it means "could not check", never "found a
// duplicate".
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Insert(ctx context.Context, rec Record) (rowsAffected int64, err error)
}

// Tx is a Store bound to an open transaction. The batch importer is the only
// component that may commit or roll it back.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Connector begins one transaction per batch against the target's table.
type Connector interface {
	Begin(ctx context.Context) (Tx, error)
}

// processRow drives one line through its terminal state: field count check,
// fixed-order field validation with first-failure short circuit, advisory
// duplicate check, then the insert against the batch transaction.
func processRow(ctx context.Context, store Store, target Target, cache KeyCache, row Row) LineOutcome {
	if len(row.Fields) < target.MinFields() {
		return rejected(row.Number, fmt.Sprintf(
			"Incomplete set of data. Expected %d fields, got %d", target.MinFields(), len(row.Fields)))
	}

	rec, ferr := target.Parse(row.Fields)
	if ferr != nil {
		return rejected(row.Number, ferr.Reason)
	}

	key := rec.Key()

	duplicate := cache != nil && cache.Seen(ctx, target.Name(), key)
	if !duplicate {
		exists, err := store.Exists(ctx, key)
		if err != nil {
			return rejected(row.Number, fmt.Sprintf(
				"Storage error checking duplicate %s %s: %v", target.Label(), key, err))
		}
		duplicate = exists
	}
	if duplicate {
		return rejected(row.Number, fmt.Sprintf(
			"%s %s already exists (Duplicate)", target.Label(), key))
	}

	rows, err := store.Insert(ctx, rec)
	if err != nil {
		return rejected(row.Number, fmt.Sprintf(
			"Failed to insert %s %s: %v", target.Label(), key, err))
	}
	if rows == 0 {
		return rejected(row.Number, fmt.Sprintf(
			"Failed to insert %s %s (0 rows affected)", target.Label(), key))
	}

	return imported(row.Number, target.Label(), key)
}
