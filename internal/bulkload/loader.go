package bulkload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/schema"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// cleanupTimeout bounds statements that restore state after the caller's
// context has already ended.
const cleanupTimeout = 10 * time.Second

// LoadOptions tunes how source files are loaded.
type LoadOptions struct {
	// BatchTimeout bounds the insert transaction of one entity.
	// Zero means ecomadmin.DefaultBatchTimeout.
	BatchTimeout time.Duration

	// Strict fails the whole entity when any row is rejected.
	Strict bool

	// AllowMissing makes LoadAll skip entities whose source file is absent.
	AllowMissing bool
}

// LoadResult summarizes one entity load.
type LoadResult struct {
	RunID    uuid.UUID
	Entity   string
	Source   string
	Inserted int
	Skipped  int
	Rejected []*ecomadmin.ValidationError
	Duration time.Duration

	// Checksum is the normalized SHA-256 of the source file.
	Checksum string
}

// TableClear reports whether one table was truncated by ClearAll.
type TableClear struct {
	Table   string
	Cleared bool
}

// Loader reads source files through a FileSystemProvider and writes them
// through whatever connection the caller passes in.
type Loader struct {
	fsys   filesystem.FileSystemProvider
	logger ecomadmin.Logger
	opts   LoadOptions
	now    func() time.Time
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(fsys filesystem.FileSystemProvider, logger ecomadmin.Logger, opts LoadOptions) *Loader {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = ecomadmin.DefaultBatchTimeout
	}
	return &Loader{fsys: fsys, logger: logger, opts: opts, now: time.Now}
}

// LoadEntity loads one source file into the entity's table in a single transaction.
//
// Failures before the insert (missing file, header mismatch, strict rejections)
// leave the table untouched. When the result is returned together with an error,
// Inserted is zero and Skipped/Rejected describe what was read.
func (l *Loader) LoadEntity(ctx context.Context, conn ecomadmin.DBConn, entity *schema.Entity, source string) (*LoadResult, error) {
	start := time.Now()

	table, err := readSource(l.fsys, entity, source)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{RunID: uuid.New(), Entity: entity.Name, Source: source, Checksum: table.checksum}
	l.logger.Verbose("Source %s checksum %s", source, table.checksum)
	defer func() { result.Duration = time.Since(start) }()

	records, skipped, rejected := buildRecords(entity, table, l.now().UTC())
	result.Skipped = skipped
	result.Rejected = rejected

	for _, r := range rejected {
		l.logger.Verbose("Rejected: %v", r)
	}

	if l.opts.Strict && len(rejected) > 0 {
		errs := make([]error, len(rejected))
		for i, r := range rejected {
			errs[i] = r
		}
		return result, fmt.Errorf("strict load of %s rejected %d rows: %w", entity.Name, len(rejected), errors.Join(errs...))
	}

	if len(records) == 0 {
		l.logger.Info("No %s rows to insert from %s (%d skipped, %d rejected)", entity.Name, source, skipped, len(rejected))
		return result, nil
	}

	if err := l.insert(ctx, conn, entity, records); err != nil {
		return result, err
	}
	result.Inserted = len(records)

	l.logger.Info("Loaded %d %s rows from %s (%d skipped, %d rejected)",
		result.Inserted, entity.Name, source, skipped, len(rejected))
	return result, nil
}

func (l *Loader) insert(ctx context.Context, conn ecomadmin.DBConn, entity *schema.Entity, records []record) (err error) {
	batchCtx, cancel := context.WithTimeout(ctx, l.opts.BatchTimeout)
	defer cancel()

	tx, err := conn.Begin(batchCtx)
	if err != nil {
		return l.batchError(ctx, batchCtx, entity, "begin load of", err)
	}
	defer func() {
		if err == nil {
			return
		}
		rbCtx, rbCancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
		defer rbCancel()
		if rbErr := tx.Rollback(rbCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			l.logger.Error("Rollback of %s failed: %v", entity.Name, rbErr)
		}
	}()

	stmt := insertStatement(entity)
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(stmt, rec.values...)
	}

	l.logger.Verbose("Inserting %d %s rows", len(records), entity.Name)
	results := tx.SendBatch(batchCtx, batch)
	for _, rec := range records {
		if _, execErr := results.Exec(); execErr != nil {
			results.Close()
			return l.batchError(ctx, batchCtx, entity, "insert", fmt.Errorf("row %d: %w", rec.row, execErr))
		}
	}
	if closeErr := results.Close(); closeErr != nil {
		return l.batchError(ctx, batchCtx, entity, "insert", closeErr)
	}

	if _, seqErr := tx.Exec(batchCtx, sequenceStatement(entity), pgx.Identifier{entity.Table}.Sanitize(), entity.IDName); seqErr != nil {
		return l.batchError(ctx, batchCtx, entity, "advance identity of", seqErr)
	}

	if commitErr := tx.Commit(batchCtx); commitErr != nil {
		return l.batchError(ctx, batchCtx, entity, "commit load of", commitErr)
	}
	return nil
}

// batchError reports the batch deadline as a TimeoutError and any other failure
// as a PersistenceError.
func (l *Loader) batchError(ctx, batchCtx context.Context, entity *schema.Entity, op string, err error) error {
	if ctx.Err() == nil && errors.Is(batchCtx.Err(), context.DeadlineExceeded) {
		return &ecomadmin.TimeoutError{Op: "load " + entity.Name, Timeout: l.opts.BatchTimeout}
	}
	return &ecomadmin.PersistenceError{Entity: entity.Name, Op: op, Err: err}
}

// LoadAll loads every entity from dir in foreign-key order. The first failing
// stage stops the run; stages already loaded stay committed.
func (l *Loader) LoadAll(ctx context.Context, conn ecomadmin.DBConn, dir string) ([]*LoadResult, error) {
	info, err := l.fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: directory %s", ecomadmin.ErrSourceNotFound, dir)
	}

	results := make([]*LoadResult, 0, len(schema.LoadOrder))
	for _, entity := range schema.LoadOrder {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		source := l.fsys.Join(dir, entity.File)
		result, err := l.LoadEntity(ctx, conn, entity, source)
		if err != nil {
			if l.opts.AllowMissing && errors.Is(err, ecomadmin.ErrSourceNotFound) {
				l.logger.Info("Skipping %s: %s not found", entity.Name, source)
				continue
			}
			if result != nil {
				results = append(results, result)
			}
			return results, fmt.Errorf("loading %s stopped the run: %w", entity.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}
