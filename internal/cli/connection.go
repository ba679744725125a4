package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/config"
	"github.com/vvka-141/ecomadmin/internal/db"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	connection     string
	host           string
	port           int
	username       string
	database       string
	sslMode        string
	azure          bool
	azureTenantID  string
	azureClientID  string
	aws            bool
	awsRegion      string
	googleInstance string
}

func registerConnectionFlags(cmd *cobra.Command, f *connectionFlags) {
	flags := cmd.PersistentFlags()

	// Connection string flag (mutually exclusive with server-selecting flags)
	flags.StringVar(&f.connection, "connection", "",
		"PostgreSQL connection string (URI or keyword/value format).\n"+
			"Mutually exclusive with --host, --port, --username and --sslmode.\n"+
			"Alternative: $ECOMADMIN_CONNECTION_STRING or $DATABASE_URL.\n"+
			"Example: postgresql://admin@localhost:5432/shop")

	// Granular connection flags (PostgreSQL standard)
	// Precedence: flag > environment variable > ecomadmin.yaml > default
	flags.StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > localhost")
	flags.IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > 5432")
	flags.StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or current OS user)")
	flags.StringVarP(&f.database, "database", "d", "",
		"Database name; overrides the database of any connection string\n"+
			"(default: $PGDATABASE or ecomadmin.yaml)")
	flags.StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: prefer, or $PGSSLMODE)")

	// Cloud authentication flags
	flags.BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential chain (Managed Identity, Azure CLI, etc.)")
	flags.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	flags.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
	flags.BoolVar(&f.aws, "aws", false,
		"Enable AWS RDS IAM authentication (uses the default AWS credential chain)")
	flags.StringVar(&f.awsRegion, "aws-region", "",
		"AWS region of the RDS instance (overrides $AWS_REGION)")
	flags.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance); enables Google IAM authentication")

	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
}

// resolveConnection turns flags, environment and ecomadmin.yaml into one
// connection configuration.
func resolveConnection(
	flags connectionFlags,
	projectCfg *config.ProjectConfig,
	logger ecomadmin.Logger,
) (*ecomadmin.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     flags.host,
		Port:     flags.port,
		Username: flags.username,
		Database: flags.database,
		SSLMode:  flags.sslMode,
	}

	cloudFlags := &db.CloudFlags{
		AWS:            flags.aws,
		AWSRegion:      flags.awsRegion,
		Azure:          flags.azure,
		AzureTenantID:  flags.azureTenantID,
		AzureClientID:  flags.azureClientID,
		GoogleInstance: flags.googleInstance,
	}

	connConfig, err := db.ResolveConnectionParams(
		flags.connection,
		granularFlags,
		cloudFlags,
		db.LoadFromEnvironment(),
		projectCfg,
	)
	if err != nil {
		return nil, err
	}

	if connConfig.Database == "" {
		return nil, fmt.Errorf("database name is required\n"+
			"Provide via:\n"+
			"  1. --database/-d flag: ecomadmin status -d shop\n"+
			"  2. Connection string: ecomadmin status --connection \"postgresql://user@host/shop\"\n"+
			"  3. Environment variable: export PGDATABASE=shop\n"+
			"  4. %s: connection.database: %w", ecomadmin.ConfigFileName, ecomadmin.ErrInvalidConfig)
	}

	logConnectionVerbose(logger, connConfig)
	return connConfig, nil
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger ecomadmin.Logger, connConfig *ecomadmin.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Database: %s", connConfig.Database)
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
	logger.Verbose("  Auth Method: %s", connConfig.AuthMethod)
}
