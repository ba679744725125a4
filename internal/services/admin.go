package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// AdminService runs every administrative operation inside its own session
// and under the overall operation timeout.
//
// Thread-Safety: safe for concurrent use; each call opens its own session.
type AdminService struct {
	sessions ecomadmin.SessionOpener
	approver ecomadmin.Approver
	loader   *bulkload.Loader
	catalog  *catalog.Catalog
	logger   ecomadmin.Logger
	timeout  time.Duration
}

// NewAdminService creates an AdminService. A zero timeout disables the
// operation deadline.
//
// Panics on nil dependencies; runtime conditions such as bad configuration or
// an unreachable database are returned as errors by each operation.
func NewAdminService(
	sessions ecomadmin.SessionOpener,
	approver ecomadmin.Approver,
	loader *bulkload.Loader,
	cat *catalog.Catalog,
	logger ecomadmin.Logger,
	timeout time.Duration,
) *AdminService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AdminService{
		sessions: sessions,
		approver: approver,
		loader:   loader,
		catalog:  cat,
		logger:   logger,
		timeout:  timeout,
	}
}

// Catalog exposes the query catalog for listing and interactive selection.
func (s *AdminService) Catalog() *catalog.Catalog {
	return s.catalog
}

// ApplySchema creates any missing table.
func (s *AdminService) ApplySchema(ctx context.Context, connConfig *ecomadmin.ConnectionConfig) error {
	return s.withSession(ctx, connConfig, "schema apply", func(ctx context.Context, conn ecomadmin.DBConn) error {
		if err := schema.Apply(ctx, conn); err != nil {
			return err
		}
		s.logger.Info("Schema applied to database '%s'", connConfig.Database)
		return nil
	})
}

// Status reports the row count of every table in load order.
func (s *AdminService) Status(ctx context.Context, connConfig *ecomadmin.ConnectionConfig) ([]schema.TableCount, error) {
	var counts []schema.TableCount
	err := s.withSession(ctx, connConfig, "status", func(ctx context.Context, conn ecomadmin.DBConn) error {
		var err error
		counts, err = schema.Counts(ctx, conn)
		return err
	})
	return counts, err
}

// LoadEntity bulk-loads one entity from source.
func (s *AdminService) LoadEntity(
	ctx context.Context,
	connConfig *ecomadmin.ConnectionConfig,
	entityName, source string,
) (*bulkload.LoadResult, error) {
	entity, err := schema.Lookup(entityName)
	if err != nil {
		return nil, err
	}

	var result *bulkload.LoadResult
	err = s.withSession(ctx, connConfig, "load "+entity.Name, func(ctx context.Context, conn ecomadmin.DBConn) error {
		var err error
		result, err = s.loader.LoadEntity(ctx, conn, entity, source)
		return err
	})
	return result, err
}

// LoadAll bulk-loads every entity from dir in dependency order. The results
// of stages that committed are returned even when a later stage fails.
func (s *AdminService) LoadAll(ctx context.Context, connConfig *ecomadmin.ConnectionConfig, dir string) ([]*bulkload.LoadResult, error) {
	var results []*bulkload.LoadResult
	err := s.withSession(ctx, connConfig, "load all", func(ctx context.Context, conn ecomadmin.DBConn) error {
		var err error
		results, err = s.loader.LoadAll(ctx, conn, dir)
		return err
	})
	return results, err
}

// Clear truncates every table after the approver confirms the target database.
func (s *AdminService) Clear(ctx context.Context, connConfig *ecomadmin.ConnectionConfig) ([]bulkload.TableClear, error) {
	if err := connConfig.Validate(); err != nil {
		return nil, err
	}

	s.logger.Verbose("Requesting approval to clear database '%s'", connConfig.Database)
	approved, err := s.approver.RequestApproval(ctx, connConfig.Database)
	if err != nil {
		return nil, fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return nil, ecomadmin.ErrApprovalDenied
	}

	var clears []bulkload.TableClear
	err = s.withSession(ctx, connConfig, "clear", func(ctx context.Context, conn ecomadmin.DBConn) error {
		var err error
		clears, err = s.loader.ClearAll(ctx, conn)
		return err
	})
	return clears, err
}

// RunQuery executes a catalog entry. Unknown names and bad arguments are
// reported before any connection is made.
func (s *AdminService) RunQuery(
	ctx context.Context,
	connConfig *ecomadmin.ConnectionConfig,
	name string,
	raw map[string]string,
) (*catalog.Result, error) {
	entry, err := s.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	if _, err := entry.ParseArgs(raw); err != nil {
		return nil, err
	}

	var result *catalog.Result
	err = s.withSession(ctx, connConfig, "query "+entry.Name, func(ctx context.Context, conn ecomadmin.DBConn) error {
		var err error
		result, err = entry.Run(ctx, conn, raw)
		return err
	})
	return result, err
}

// withSession validates connConfig, opens a session under the operation
// deadline, runs fn on its connection and always closes the session.
func (s *AdminService) withSession(
	ctx context.Context,
	connConfig *ecomadmin.ConnectionConfig,
	op string,
	fn func(ctx context.Context, conn ecomadmin.DBConn) error,
) error {
	if err := connConfig.Validate(); err != nil {
		return err
	}

	opCtx, cancel := s.operationContext(ctx)
	defer cancel()

	session, err := s.sessions.Open(opCtx, connConfig)
	if err != nil {
		return s.deadlineError(ctx, opCtx, op, err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			s.logger.Error("Failed to close session: %v", closeErr)
		}
	}()

	if err := fn(opCtx, session.Conn()); err != nil {
		return s.deadlineError(ctx, opCtx, op, err)
	}
	return nil
}

func (s *AdminService) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// deadlineError reports err as a TimeoutError when the operation deadline,
// not the caller, ended the operation.
func (s *AdminService) deadlineError(ctx, opCtx context.Context, op string, err error) error {
	if errors.Is(err, ecomadmin.ErrTimeout) {
		return err
	}
	if ctx.Err() == nil && errors.Is(opCtx.Err(), context.DeadlineExceeded) {
		return errors.Join(&ecomadmin.TimeoutError{Op: op, Timeout: s.timeout}, err)
	}
	return err
}
