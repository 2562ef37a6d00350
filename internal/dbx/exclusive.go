package dbx

import (
	"context"
	"fmt"
	"strings"
)

// ExclusiveFlag describes a boolean column that may be true on at most one
// row among the rows sharing the same Scope column values, e.g. the default
// document per (user_id, document_type) or the primary email per user_id.
//
// The table must have an "id" primary key and an "updated_at" column.
type ExclusiveFlag struct {
	Table  string
	Column string
	Scope  []string
}

// Claim clears the flag on every row of the scope except keepID. The caller
// then persists its own row with the flag set, in the same transaction.
//
// Claim must run on a transactional DBTX: it takes a transaction-scoped
// advisory lock on the scope so concurrent claimers of the same scope are
// serialized until commit and readers never observe two flagged rows.
func (f ExclusiveFlag) Claim(ctx context.Context, tx DBTX, keepID string, scope ...any) error {
	if len(scope) != len(f.Scope) {
		return fmt.Errorf("exclusive flag %s.%s: want %d scope values, got %d",
			f.Table, f.Column, len(f.Scope), len(scope))
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, f.LockKey(scope...)); err != nil {
		return fmt.Errorf("lock error: %w", err)
	}

	args := make([]any, 0, len(scope)+1)
	args = append(args, scope...)
	args = append(args, keepID)

	if _, err := tx.ExecContext(ctx, f.ClearQuery(), args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ClearQuery renders the UPDATE statement used by Claim. Placeholders are
// numbered scope first, then the kept id.
func (f ExclusiveFlag) ClearQuery() string {
	var b strings.Builder
	fmt.Fprintf(&b, "UPDATE %s SET %s = false, updated_at = now() WHERE %s", f.Table, f.Column, f.Column)
	for i, col := range f.Scope {
		fmt.Fprintf(&b, " AND %s = $%d", col, i+1)
	}
	fmt.Fprintf(&b, " AND id <> $%d", len(f.Scope)+1)
	return b.String()
}

// LockKey is the advisory lock name for one scope, e.g.
// "documents:is_default:<user>:RESUME".
func (f ExclusiveFlag) LockKey(scope ...any) string {
	parts := make([]string, 0, len(scope)+2)
	parts = append(parts, f.Table, f.Column)
	for _, v := range scope {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ":")
}
