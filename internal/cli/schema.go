package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the e-commerce schema",
}

var schemaApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create every table, index and sequence that does not exist yet",
	Long: `Create the e-commerce schema: the customer, address, payment, category,
vendor, profile, product and orders tables with their keys and indexes.

Existing objects are left untouched, so apply may be run repeatedly.`,
	Example: `  ecomadmin schema apply -d shop
  ecomadmin schema apply --connection "postgresql://admin@localhost/shop"`,
	Args: cobra.NoArgs,
	RunE: runSchemaApply,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaApplyCmd)
}

func runSchemaApply(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "schema apply")
	defer stop()

	a.progress.Start(fmt.Sprintf("Applying schema to '%s'", connConfig.Database))
	if err := a.service.ApplySchema(ctx, connConfig); err != nil {
		a.progress.Error("Schema apply failed")
		return err
	}
	a.progress.Success("Schema is up to date")
	return nil
}
