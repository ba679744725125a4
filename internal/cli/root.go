package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

var rootCmd = &cobra.Command{
	Use:   "ecomadmin",
	Short: "E-commerce database administration",
	Long: `ecomadmin manages the e-commerce PostgreSQL database: it creates the schema,
bulk-loads CSV source files in dependency order, clears every table and runs the
catalog of named report queries and insert forms.

Connection precedence:
  --connection > $ECOMADMIN_CONNECTION_STRING / $DATABASE_URL
  > -h/-p/-U/--sslmode > $PG* > ecomadmin.yaml > defaults
  -d always overrides the database name.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments, flags, query or entity name)
  3  - Panic or unexpected system error
  10 - Invalid configuration, parameters or input values
  11 - Database connection failed
  12 - User denied a destructive operation
  13 - Database rejected a write
  14 - Source file or directory not found
  15 - Source file lacks declared columns
  16 - Operation timed out`,
	SilenceUsage: true,
}

type globalFlagValues struct {
	configDir    string
	timeout      time.Duration
	batchTimeout time.Duration
	output       string
}

var (
	globalFlags globalFlagValues
	connFlags   connectionFlags
)

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is the host flag, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for ecomadmin")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	rootCmd.PersistentFlags().StringVar(&globalFlags.configDir, "config", ".",
		"Directory holding "+ecomadmin.ConfigFileName+" and .env")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.timeout, "timeout", ecomadmin.DefaultOperationTimeout,
		"Overall deadline of one operation (ecomadmin.yaml: timeout)\n"+
			"Examples: 30s, 5m")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.batchTimeout, "batch-timeout", ecomadmin.DefaultBatchTimeout,
		"Deadline of one entity insert batch (ecomadmin.yaml: load.batch_timeout)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.output, "output", "o", "table",
		"Output format: table|json|yaml")

	registerConnectionFlags(rootCmd, &connFlags)

	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
