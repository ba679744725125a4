package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/config"
	"github.com/vvka-141/ecomadmin/internal/db"
	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
	"github.com/vvka-141/ecomadmin/internal/logging"
	"github.com/vvka-141/ecomadmin/internal/render"
	"github.com/vvka-141/ecomadmin/internal/services"
	"github.com/vvka-141/ecomadmin/internal/tui"
	"github.com/vvka-141/ecomadmin/internal/ui"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// appOptions carries the command-specific switches that shape the service graph.
type appOptions struct {
	force        bool
	strict       bool
	allowMissing bool

	// quiet discards log output; the browser owns the whole terminal.
	quiet bool
}

// app is the per-invocation composition root: it wires configuration,
// logging, approval, loading and the query catalog into one AdminService.
type app struct {
	logger   ecomadmin.Logger
	project  *config.ProjectConfig
	fs       filesystem.FileSystemProvider
	service  *services.AdminService
	renderer *render.Renderer
	progress *tui.ProgressDisplay
}

func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	verbose := getVerboseFlag(cmd)
	var logger ecomadmin.Logger = logging.NewConsoleLogger(verbose)
	if opts.quiet {
		logger = logging.NewNullLogger()
	}

	format, err := render.ParseFormat(globalFlags.output)
	if err != nil {
		return nil, err
	}

	projectCfg, err := loadProjectConfig(globalFlags.configDir)
	if err != nil {
		return nil, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, globalFlags.timeout)
	if err != nil {
		return nil, err
	}
	batchTimeout, err := resolveBatchTimeout(cmd, projectCfg, globalFlags.batchTimeout)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Operation timeout: %s, batch timeout: %s", timeout, batchTimeout)

	var approver ecomadmin.Approver
	if opts.force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}

	fsProvider := filesystem.NewOSFileSystem()
	loader := bulkload.NewLoader(fsProvider, logger, bulkload.LoadOptions{
		BatchTimeout: batchTimeout,
		Strict:       opts.strict || projectCfg.Load.Strict,
		AllowMissing: opts.allowMissing || projectCfg.Load.AllowMissing,
	})
	sessions := services.NewSessionManager(db.NewConnector, logger)
	service := services.NewAdminService(sessions, approver, loader, catalog.New(), logger, timeout)

	return &app{
		logger:   logger,
		project:  projectCfg,
		fs:       fsProvider,
		service:  service,
		renderer: render.New(cmd.OutOrStdout(), format),
		progress: tui.NewProgressDisplay(progressWriter(cmd, format)),
	}, nil
}

// progressWriter silences progress lines when stdout carries a document.
func progressWriter(cmd *cobra.Command, format render.Format) io.Writer {
	if format != render.FormatTable {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}

// connection resolves the target database from flags, environment and
// ecomadmin.yaml.
func (a *app) connection() (*ecomadmin.ConnectionConfig, error) {
	return resolveConnection(connFlags, a.project, a.logger)
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context, what string) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling %s...\n", what)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
