package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/bulkload"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

type loadFlagValues struct {
	strict       bool
	allowMissing bool
}

var loadFlags loadFlagValues

var loadCmd = &cobra.Command{
	Use:   "load <entity> <file>",
	Short: "Bulk-load one entity from a CSV file",
	Long: `Load rows of one entity (customer, address, payment, category, vendor, profile,
product or order) from a CSV file whose header names the entity's columns.

Rows that fail validation are reported and skipped; the valid rows of the file
are inserted in a single transaction. Use --strict to reject the whole file
when any row is invalid.`,
	Example: `  ecomadmin load product data/product.csv -d shop
  ecomadmin load order order.csv -d shop --strict`,
	Args:              requireArgs("product data/product.csv -d shop", "entity", "file"),
	ValidArgsFunction: completeEntityNames,
	RunE:              runLoadEntity,
}

var loadAllCmd = &cobra.Command{
	Use:   "all [dir]",
	Short: "Bulk-load every entity from a directory in dependency order",
	Long: `Load customer.csv, address.csv, payment.csv, category.csv, vendor.csv,
profile.csv, product.csv and order.csv from dir, each in its own transaction,
parents before children.

dir defaults to load.data_dir of ecomadmin.yaml, then to ./data. A stage that
fails stops the run; stages loaded before it stay committed.`,
	Example: `  ecomadmin load all -d shop
  ecomadmin load all ./fixtures -d shop --allow-missing`,
	Args:              optionalArg("dir"),
	ValidArgsFunction: completeDirectories,
	RunE:              runLoadAll,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.AddCommand(loadAllCmd)

	loadCmd.PersistentFlags().BoolVar(&loadFlags.strict, "strict", false,
		"Fail the entity when any row is rejected (ecomadmin.yaml: load.strict)")
	loadAllCmd.Flags().BoolVar(&loadFlags.allowMissing, "allow-missing", false,
		"Skip entities whose source file is absent (ecomadmin.yaml: load.allow_missing)")
}

func runLoadEntity(cmd *cobra.Command, args []string) error {
	entity, source := args[0], args[1]

	a, err := newApp(cmd, appOptions{strict: loadFlags.strict})
	if err != nil {
		return err
	}
	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "load")
	defer stop()

	a.progress.Start(fmt.Sprintf("Loading %s from %s", entity, source))
	result, err := a.service.LoadEntity(ctx, connConfig, entity, source)
	if err != nil {
		a.progress.Error(fmt.Sprintf("Loading %s failed", entity))
		return err
	}
	a.progress.Success(fmt.Sprintf("Loaded %s", entity))
	return a.renderer.Loads([]*bulkload.LoadResult{result})
}

func runLoadAll(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, appOptions{strict: loadFlags.strict, allowMissing: loadFlags.allowMissing})
	if err != nil {
		return err
	}
	dir := dataDir(args, a.project.Load.DataDir)

	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "load")
	defer stop()

	a.progress.Start(fmt.Sprintf("Loading every entity from %s", dir))
	results, err := a.service.LoadAll(ctx, connConfig, dir)
	if err != nil {
		a.progress.Error("Load stopped")
		// Committed stages are still worth reporting.
		if len(results) > 0 {
			if renderErr := a.renderer.Loads(results); renderErr != nil {
				a.logger.Error("Failed to render partial results: %v", renderErr)
			}
		}
		return err
	}
	a.progress.Success(fmt.Sprintf("Loaded %d entities", len(results)))
	return a.renderer.Loads(results)
}

// dataDir picks the source directory: argument, then ecomadmin.yaml, then the default.
func dataDir(args []string, configured string) string {
	switch {
	case len(args) > 0 && args[0] != "":
		return args[0]
	case configured != "":
		return configured
	default:
		return ecomadmin.DefaultDataDir
	}
}
