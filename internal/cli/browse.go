package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/render"
	"github.com/vvka-141/ecomadmin/internal/tui"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and run the query catalog interactively",
	Long: `Open a full-screen browser over the query catalog: pick an entry, fill in
its parameters and read the result, then go back for another.

Parameter defaults from ecomadmin.yaml apply to fields left empty.`,
	Example: `  ecomadmin browse -d shop`,
	Args:    cobra.NoArgs,
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return fmt.Errorf("browse needs an interactive terminal; use 'ecomadmin query run' in scripts: %w",
			ecomadmin.ErrInvalidConfig)
	}

	a, err := newApp(cmd, appOptions{quiet: true})
	if err != nil {
		return err
	}
	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "browse")
	defer stop()

	browser := tui.NewBrowser(ctx, a.service.Catalog(), a.browseRunner(connConfig), renderTable)
	return tui.RunBrowser(ctx, browser)
}

// browseRunner runs entries picked in the browser. Form fields left empty
// fall back to ecomadmin.yaml defaults.
func (a *app) browseRunner(connConfig *ecomadmin.ConnectionConfig) tui.RunFunc {
	return func(ctx context.Context, name string, values map[string]string) (*catalog.Result, error) {
		entry, err := a.service.Catalog().Lookup(name)
		if err != nil {
			return nil, err
		}
		raw, err := loadMergedParameters(entry, a.project, a.fs, nil, nil, a.logger)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			if v != "" {
				raw[k] = v
			}
		}
		return a.service.RunQuery(ctx, connConfig, name, raw)
	}
}

func renderTable(res *catalog.Result) (string, error) {
	var buf bytes.Buffer
	if err := render.New(&buf, render.FormatTable).Result(res); err != nil {
		return "", err
	}
	return buf.String(), nil
}
