package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

//go:embed schema.sql
var ddl string

// DDL returns the CREATE statements for every table.
func DDL() string {
	return ddl
}

// Apply creates any missing tables and indexes. It is safe to run repeatedly.
func Apply(ctx context.Context, conn ecomadmin.DBConn) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return &ecomadmin.PersistenceError{Op: "apply schema", Err: err}
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return &ecomadmin.PersistenceError{Op: "apply schema", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &ecomadmin.PersistenceError{Op: "apply schema", Err: err}
	}
	return nil
}

// TableCount is the row count of one table; Missing is set when the table does not exist.
type TableCount struct {
	Table   string
	Rows    int64
	Missing bool
}

// Counts returns the row count of every table in load order.
func Counts(ctx context.Context, conn ecomadmin.DBConn) ([]TableCount, error) {
	counts := make([]TableCount, 0, len(LoadOrder))
	for _, e := range LoadOrder {
		var exists bool
		if err := conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", e.Table).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check %s: %w", e.Table, err)
		}
		if !exists {
			counts = append(counts, TableCount{Table: e.Table, Missing: true})
			continue
		}

		var n int64
		query := "SELECT count(*) FROM " + pgx.Identifier{e.Table}.Sanitize()
		if err := conn.QueryRow(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", e.Table, err)
		}
		counts = append(counts, TableCount{Table: e.Table, Rows: n})
	}
	return counts, nil
}
