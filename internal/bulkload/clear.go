package bulkload

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

const (
	relaxConstraintsSQL   = "SET session_replication_role = replica"
	restoreConstraintsSQL = "RESET session_replication_role"

	// insufficient_privilege; changing the replication role needs superuser
	// or an explicit grant.
	sqlStateInsufficientPrivilege = "42501"
)

// ClearAll truncates every table in schema.TruncateOrder, resetting
// identities. conn must be a single session connection: the relaxed
// replication role is session state and is restored before returning on
// every path, including cancellation.
func (l *Loader) ClearAll(ctx context.Context, conn ecomadmin.DBConn) (clears []TableClear, err error) {
	tables := schema.TruncateOrder()
	clears = make([]TableClear, len(tables))
	for i, t := range tables {
		clears[i] = TableClear{Table: t}
	}

	relaxed, err := l.relaxConstraints(ctx, conn)
	if err != nil {
		return clears, err
	}
	if relaxed {
		defer func() {
			if restoreErr := l.restoreConstraints(ctx, conn); restoreErr != nil {
				err = errors.Join(err, restoreErr)
			}
		}()
	}

	for i, table := range tables {
		stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pgx.Identifier{table}.Sanitize())
		l.logger.Verbose("Executing: %s", stmt)
		if _, execErr := conn.Exec(ctx, stmt); execErr != nil {
			return clears, &ecomadmin.PersistenceError{Entity: table, Op: "truncate", Err: execErr}
		}
		clears[i].Cleared = true
	}

	l.logger.Info("Cleared %d tables", len(tables))
	return clears, nil
}

// relaxConstraints reports false without error when the role lacks the
// privilege; TRUNCATE ... CASCADE still succeeds in that case.
func (l *Loader) relaxConstraints(ctx context.Context, conn ecomadmin.DBConn) (bool, error) {
	_, err := conn.Exec(ctx, relaxConstraintsSQL)
	if err == nil {
		return true, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateInsufficientPrivilege {
		l.logger.Verbose("Cannot relax constraints (%s), truncating with CASCADE only", pgErr.Message)
		return false, nil
	}
	return false, &ecomadmin.PersistenceError{Op: "relax constraints for clear", Err: err}
}

func (l *Loader) restoreConstraints(ctx context.Context, conn ecomadmin.DBConn) error {
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if _, err := conn.Exec(restoreCtx, restoreConstraintsSQL); err != nil {
		l.logger.Error("Failed to restore session_replication_role: %v", err)
		return &ecomadmin.PersistenceError{Op: "restore constraints after clear", Err: err}
	}
	return nil
}
