package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/tui"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Truncate every table",
	Long: `Delete all rows of every e-commerce table, children before parents, and
restart the id sequences.

You are asked to type the database name to confirm. Non-interactive runs
(CI, pipes, ECOMADMIN_NON_INTERACTIVE=1) must pass --force.`,
	Example: `  ecomadmin clear -d shop
  ecomadmin clear -d shop_test --force`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVar(&clearForce, "force", false,
		"Skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearForce && !tui.IsInteractive() {
		return fmt.Errorf("clear needs confirmation but no terminal is attached; pass --force to clear anyway: %w",
			ecomadmin.ErrApprovalDenied)
	}

	a, err := newApp(cmd, appOptions{force: clearForce})
	if err != nil {
		return err
	}
	connConfig, err := a.connection()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context(), "clear")
	defer stop()

	clears, err := a.service.Clear(ctx, connConfig)
	if err != nil {
		return err
	}
	a.progress.Success(fmt.Sprintf("Cleared database '%s'", connConfig.Database))
	return a.renderer.Clears(clears)
}
