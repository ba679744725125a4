package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/ecomadmin/internal/config"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

func TestGranularConnFlags_IsEmpty(t *testing.T) {
	assert.True(t, (&GranularConnFlags{}).IsEmpty())
	assert.True(t, (&GranularConnFlags{Database: "shop"}).IsEmpty())
	assert.False(t, (&GranularConnFlags{Host: "h"}).IsEmpty())
	assert.False(t, (&GranularConnFlags{Port: 1}).IsEmpty())
	assert.False(t, (&GranularConnFlags{Username: "u"}).IsEmpty())
	assert.False(t, (&GranularConnFlags{SSLMode: "require"}).IsEmpty())
}

func TestResolve_ConnectionFlagWins(t *testing.T) {
	env := &EnvVars{ConnectionString: "postgresql://env@envhost/envdb", PGHOST: "pghost", PGPASSWORD: "pw"}

	cfg, err := ResolveConnectionParams("postgresql://flag@flaghost:6000/flagdb", nil, nil, env, nil)
	require.NoError(t, err)

	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "flagdb", cfg.Database)
	assert.Equal(t, "flag", cfg.Username)
	assert.Equal(t, "pw", cfg.Password)
}

func TestResolve_EnvConnectionStringBeforeDatabaseURL(t *testing.T) {
	env := &EnvVars{ConnectionString: "postgresql://a@first/one", DatabaseURL: "postgresql://b@second/two"}

	cfg, err := ResolveConnectionParams("", nil, nil, env, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Host)

	env.ConnectionString = ""
	cfg, err = ResolveConnectionParams("", nil, nil, env, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.Host)
}

func TestResolve_GranularFlagsBypassEnvConnectionString(t *testing.T) {
	env := &EnvVars{DatabaseURL: "postgresql://b@urlhost/two", PGDATABASE: "pgdb"}

	cfg, err := ResolveConnectionParams("", &GranularConnFlags{Host: "flaghost"}, nil, env, nil)
	require.NoError(t, err)
	assert.Equal(t, "flaghost", cfg.Host)
	assert.Equal(t, "pgdb", cfg.Database)
}

func TestResolve_GranularPrecedence(t *testing.T) {
	project := &config.ProjectConfig{Connection: config.ConnectionConfig{
		Host: "yamlhost", Port: 7000, Username: "yamluser", Database: "yamldb", SSLMode: "verify-full",
	}}

	cfg, err := ResolveConnectionParams("", &GranularConnFlags{Database: "flagdb"}, nil, &EnvVars{PGUSER: "envuser"}, project)
	require.NoError(t, err)
	assert.Equal(t, "yamlhost", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "flagdb", cfg.Database)
	assert.Equal(t, "verify-full", cfg.SSLMode)

	cfg, err = ResolveConnectionParams("", &GranularConnFlags{Port: 5999}, nil, &EnvVars{PGPORT: "6543"}, project)
	require.NoError(t, err)
	assert.Equal(t, 5999, cfg.Port)
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("USER", "me")

	cfg, err := ResolveConnectionParams("", nil, nil, &EnvVars{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "me", cfg.Username)
	assert.Equal(t, "prefer", cfg.SSLMode)
	assert.Equal(t, ecomadmin.AuthMethodStandard, cfg.AuthMethod)
}

func TestResolve_Errors(t *testing.T) {
	_, err := ResolveConnectionParams("postgresql://h/d", &GranularConnFlags{Host: "x"}, nil, nil, nil)
	assert.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)

	_, err = ResolveConnectionParams("", nil, nil, &EnvVars{PGPORT: "abc"}, nil)
	assert.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)

	_, err = ResolveConnectionParams("garbage", nil, nil, nil, nil)
	assert.ErrorIs(t, err, ecomadmin.ErrInvalidConfig)

	project := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "kerberos"}}
	_, err = ResolveConnectionParams("", nil, nil, nil, project)
	assert.ErrorIs(t, err, ecomadmin.ErrUnsupportedAuthMethod)
}

func TestResolve_CloudAuth(t *testing.T) {
	env := &EnvVars{AWSRegion: "us-east-1", AzureTenantID: "tenant", AzureClientSecret: "secret"}

	cfg, err := ResolveConnectionParams("postgresql://u@rds/shop", nil, &CloudFlags{AWS: true}, env, nil)
	require.NoError(t, err)
	assert.Equal(t, ecomadmin.AuthMethodAWSIAM, cfg.AuthMethod)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)

	cfg, err = ResolveConnectionParams("postgresql://u@az/shop", nil, nil, env, nil)
	require.NoError(t, err)
	assert.Equal(t, ecomadmin.AuthMethodAzureEntraID, cfg.AuthMethod)
	assert.Equal(t, "tenant", cfg.AzureTenantID)
	assert.Equal(t, "secret", cfg.AzureClientSecret)

	cfg, err = ResolveConnectionParams("postgresql://u@gcp/shop", nil, &CloudFlags{GoogleInstance: "p:r:i"}, env, nil)
	require.NoError(t, err)
	assert.Equal(t, ecomadmin.AuthMethodGoogleIAM, cfg.AuthMethod)
	assert.Equal(t, "p:r:i", cfg.GoogleInstance)

	project := &config.ProjectConfig{Connection: config.ConnectionConfig{AuthMethod: "standard"}}
	cfg, err = ResolveConnectionParams("postgresql://u@h/shop", nil, nil, env, project)
	require.NoError(t, err)
	assert.Equal(t, ecomadmin.AuthMethodStandard, cfg.AuthMethod)
}
