package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// LoadConfig holds bulk loader defaults.
type LoadConfig struct {
	DataDir      string `yaml:"data_dir"`
	BatchTimeout string `yaml:"batch_timeout"`
	Strict       bool   `yaml:"strict"`
	AllowMissing bool   `yaml:"allow_missing"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadConfig       `yaml:"load"`
	Timeout    string           `yaml:"timeout"`

	// Params are default query catalog arguments, overridden by --param.
	Params map[string]string `yaml:"params"`
}

// Load reads ecomadmin.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ecomadmin.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, errors.Join(err, ecomadmin.ErrInvalidConfig))
	}
	return &cfg, nil
}

// LoadOptional behaves like Load but returns an empty config when the file is absent.
func LoadOptional(dir string) (*ProjectConfig, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return &ProjectConfig{}, nil
	}
	return cfg, err
}

// OperationTimeout parses Timeout, falling back to def when unset.
func (c *ProjectConfig) OperationTimeout(def time.Duration) (time.Duration, error) {
	return parseDuration("timeout", c.Timeout, def)
}

// BatchTimeout parses Load.BatchTimeout, falling back to def when unset.
func (c *ProjectConfig) BatchTimeout(def time.Duration) (time.Duration, error) {
	return parseDuration("load.batch_timeout", c.Load.BatchTimeout, def)
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, value, ecomadmin.ErrInvalidConfig)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive: %w", field, ecomadmin.ErrInvalidConfig)
	}
	return d, nil
}
