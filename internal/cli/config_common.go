package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/ecomadmin/internal/catalog"
	"github.com/vvka-141/ecomadmin/internal/config"
	"github.com/vvka-141/ecomadmin/internal/files/filesystem"
	"github.com/vvka-141/ecomadmin/internal/params"
	"github.com/vvka-141/ecomadmin/pkg/ecomadmin"
)

// loadProjectConfig loads .env files and ecomadmin.yaml from dir.
// An absent ecomadmin.yaml yields an empty config, not an error.
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	envFiles := []string{".env"}
	if dotenv := filepath.Join(dir, ".env"); filepath.Clean(dotenv) != ".env" {
		envFiles = append([]string{dotenv}, envFiles...)
	}
	if err := params.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	projectCfg, err := config.LoadOptional(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ecomadmin.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveEffectiveTimeout returns the --timeout value, preferring
// ecomadmin.yaml when the flag was not set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && !cmd.Flags().Changed("timeout") {
		return projectCfg.OperationTimeout(flagTimeout)
	}
	return flagTimeout, nil
}

// resolveBatchTimeout returns the --batch-timeout value, preferring
// ecomadmin.yaml when the flag was not set.
func resolveBatchTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && !cmd.Flags().Changed("batch-timeout") {
		return projectCfg.BatchTimeout(flagTimeout)
	}
	return flagTimeout, nil
}

// loadMergedParameters collects the raw arguments of one catalog entry.
// Priority (highest to lowest): CLI params > params files > ecomadmin.yaml.
// Defaults from ecomadmin.yaml only apply to parameters the entry declares.
func loadMergedParameters(
	entry *catalog.Entry,
	projectCfg *config.ProjectConfig,
	fsProvider filesystem.FileSystemProvider,
	paramsFiles []string,
	cliParamPairs []string,
	logger ecomadmin.Logger,
) (map[string]string, error) {
	defaults := make(map[string]string)
	if projectCfg != nil {
		for _, p := range entry.Params {
			if v, ok := projectCfg.Params[p.Name]; ok {
				defaults[p.Name] = v
			}
		}
	}

	fileParams, err := loadParamsFromFiles(fsProvider, paramsFiles, logger)
	if err != nil {
		return nil, err
	}

	cliParams, err := params.ParseKeyValuePairs(cliParamPairs)
	if err != nil {
		return nil, fmt.Errorf("invalid parameter format: %w", errors.Join(err, ecomadmin.ErrInvalidConfig))
	}
	if len(cliParams) > 0 {
		logger.Verbose("CLI parameters override %d value(s)", len(cliParams))
	}

	return params.Merge(defaults, fileParams, cliParams), nil
}

// loadParamsFromFiles loads parameters from .env files using the provided filesystem.
// Later files override earlier ones.
func loadParamsFromFiles(fsProvider filesystem.FileSystemProvider, paramsFiles []string, logger ecomadmin.Logger) (map[string]string, error) {
	parameters := make(map[string]string)

	for _, paramsFile := range paramsFiles {
		logger.Verbose("Loading parameters from file: %s", paramsFile)

		fileContent, err := readFile(fsProvider, paramsFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: params file '%s'\n\nTip: Verify the path or use --param to set parameters directly:\n  ecomadmin query run customer-orders --param customer_id=1",
					ecomadmin.ErrSourceNotFound, paramsFile)
			}
			return nil, fmt.Errorf("failed to read params file '%s': %w", paramsFile, err)
		}

		fileParams, err := params.ParseEnvFile(fileContent)
		if err != nil {
			return nil, fmt.Errorf("failed to parse params file '%s': %w\n\nTip: Verify the file format (KEY=VALUE)",
				paramsFile, errors.Join(err, ecomadmin.ErrInvalidConfig))
		}

		for k, v := range fileParams {
			parameters[k] = v
		}
		logger.Verbose("Loaded %d parameters from file (total: %d)", len(fileParams), len(parameters))
	}

	return parameters, nil
}

func readFile(fsProvider filesystem.FileSystemProvider, name string) ([]byte, error) {
	f, err := fsProvider.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
