package db

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/ecomadmin/internal/config"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// GranularConnFlags holds the libpq-style CLI flags (-h, -p, -U, -d).
// There is deliberately no password flag; use $PGPASSWORD, .env or a connection string.
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty reports whether no server-selecting flag was given. Database is
// excluded since it may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags selects a cloud authentication method.
type CloudFlags struct {
	AWS            bool
	AWSRegion      string
	Azure          bool
	AzureTenantID  string
	AzureClientID  string
	GoogleInstance string
}

// EnvVars captures the environment variables the resolver consults.
type EnvVars struct {
	ConnectionString string // ECOMADMIN_CONNECTION_STRING
	DatabaseURL      string // DATABASE_URL
	PGHOST           string
	PGPORT           string
	PGUSER           string
	PGPASSWORD       string
	PGDATABASE       string
	PGSSLMODE        string

	AWSRegion         string // AWS_REGION
	AzureTenantID     string // AZURE_TENANT_ID
	AzureClientID     string // AZURE_CLIENT_ID
	AzureClientSecret string // AZURE_CLIENT_SECRET
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		ConnectionString:  os.Getenv("ECOMADMIN_CONNECTION_STRING"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		PGHOST:            os.Getenv("PGHOST"),
		PGPORT:            os.Getenv("PGPORT"),
		PGUSER:            os.Getenv("PGUSER"),
		PGPASSWORD:        os.Getenv("PGPASSWORD"),
		PGDATABASE:        os.Getenv("PGDATABASE"),
		PGSSLMODE:         os.Getenv("PGSSLMODE"),
		AWSRegion:         os.Getenv("AWS_REGION"),
		AzureTenantID:     os.Getenv("AZURE_TENANT_ID"),
		AzureClientID:     os.Getenv("AZURE_CLIENT_ID"),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams resolves the connection with this precedence:
//
//  1. --connection flag
//  2. $ECOMADMIN_CONNECTION_STRING, then $DATABASE_URL (only when no granular flag is set)
//  3. granular flags, each falling back to its PG* variable, then ecomadmin.yaml, then a default
//
// -d always overrides the database. Supplying --connection together with
// granular flags is rejected as ambiguous.
func ResolveConnectionParams(
	connStringFlag string,
	granular *GranularConnFlags,
	cloud *CloudFlags,
	env *EnvVars,
	project *config.ProjectConfig,
) (*ecomadmin.ConnectionConfig, error) {
	if granular == nil {
		granular = &GranularConnFlags{}
	}
	if cloud == nil {
		cloud = &CloudFlags{}
	}
	if env == nil {
		env = &EnvVars{}
	}
	var pc config.ConnectionConfig
	if project != nil {
		pc = project.Connection
	}

	if connStringFlag != "" && !granular.IsEmpty() {
		return nil, fmt.Errorf("cannot combine --connection with -h/-p/-U/--sslmode: %w", ecomadmin.ErrInvalidConfig)
	}

	connStr := connStringFlag
	if connStr == "" && granular.IsEmpty() {
		connStr = firstNonEmpty(env.ConnectionString, env.DatabaseURL)
	}

	var cfg *ecomadmin.ConnectionConfig
	var err error
	if connStr != "" {
		cfg, err = ParseConnectionString(connStr)
		if err != nil {
			return nil, fmt.Errorf("invalid connection string: %w", err)
		}
		if cfg.Database == "" {
			cfg.Database = firstNonEmpty(env.PGDATABASE, pc.Database)
		}
		if cfg.Password == "" {
			cfg.Password = env.PGPASSWORD
		}
	} else {
		cfg, err = resolveGranular(granular, env, pc)
		if err != nil {
			return nil, err
		}
	}

	if granular.Database != "" {
		cfg.Database = granular.Database
	}

	if err := applyCloudAuth(cfg, cloud, env, pc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveGranular(flags *GranularConnFlags, env *EnvVars, pc config.ConnectionConfig) (*ecomadmin.ConnectionConfig, error) {
	cfg := newDefaultConfig()
	cfg.Host = firstNonEmpty(flags.Host, env.PGHOST, pc.Host, defaultHost)

	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case env.PGPORT != "":
		port, err := strconv.Atoi(env.PGPORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $PGPORT value %q: must be an integer: %w", env.PGPORT, ecomadmin.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	}

	cfg.Username = firstNonEmpty(flags.Username, env.PGUSER, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Password = env.PGPASSWORD
	cfg.Database = firstNonEmpty(env.PGDATABASE, pc.Database)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, env.PGSSLMODE, pc.SSLMode, defaultSSLMode)
	return cfg, nil
}

// applyCloudAuth switches the auth method when a cloud flag, Azure credentials
// in the environment, or auth_method in ecomadmin.yaml asks for it.
func applyCloudAuth(cfg *ecomadmin.ConnectionConfig, cloud *CloudFlags, env *EnvVars, pc config.ConnectionConfig) error {
	method := strings.ToLower(pc.AuthMethod)
	switch {
	case cloud.AWS:
		method = "aws"
	case cloud.Azure:
		method = "azure"
	case cloud.GoogleInstance != "":
		method = "google"
	case method == "" && (env.AzureTenantID != "" || env.AzureClientID != ""):
		method = "azure"
	}

	switch method {
	case "", "standard":
		cfg.AuthMethod = ecomadmin.AuthMethodStandard
	case "aws", "aws-iam":
		cfg.AuthMethod = ecomadmin.AuthMethodAWSIAM
		cfg.AWSRegion = firstNonEmpty(cloud.AWSRegion, env.AWSRegion, pc.AWSRegion)
	case "azure", "azure-entra-id":
		cfg.AuthMethod = ecomadmin.AuthMethodAzureEntraID
		cfg.AzureTenantID = firstNonEmpty(cloud.AzureTenantID, env.AzureTenantID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(cloud.AzureClientID, env.AzureClientID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AzureClientSecret
	case "google", "google-iam":
		cfg.AuthMethod = ecomadmin.AuthMethodGoogleIAM
		cfg.GoogleInstance = firstNonEmpty(cloud.GoogleInstance, pc.GoogleInstance)
	default:
		return fmt.Errorf("auth_method %q: %w", pc.AuthMethod, ecomadmin.ErrUnsupportedAuthMethod)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
