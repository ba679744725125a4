package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the row count of every table",
	Long: `Count the rows of every e-commerce table in dependency order.

Tables that do not exist yet are reported as missing rather than failing,
so status also tells whether 'schema apply' has run.`,
	Example: `  ecomadmin status -d shop
  ecomadmin status -d shop -o json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "status")
	defer stop()

	counts, err := a.service.Status(ctx, connConfig)
	if err != nil {
		return err
	}
	return a.renderer.Counts(counts)
}
