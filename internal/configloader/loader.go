// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gomkd/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// NoConfig skips every config file (--no-config). Environment and CLI
	// settings still apply.
	NoConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMKD_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomkd.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomkd/config.yml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	cfg := config.NewConfig()

	if !opts.NoConfig {
		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.Explicit = opts.ExplicitPath
		result.Paths = paths

		layers := []struct {
			name string
			path string
			skip bool
		}{
			{"user", paths.User, opts.IgnoreUserConfig},
			{"project", paths.Project, opts.IgnoreProjectConfig},
			{"explicit", paths.Explicit, false},
		}

		for _, layer := range layers {
			if layer.skip || layer.path == "" {
				continue
			}
			fileCfg, err := loadConfigFile(layer.path)
			if err != nil {
				return nil, fmt.Errorf("load %s config: %w", layer.name, err)
			}
			cfg = merge(cfg, fileCfg)
			result.LoadedFrom = append(result.LoadedFrom, layer.path)
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads and validates a single configuration file without
// layering it over anything.
func LoadFile(path string) (*config.Config, *ValidationResult, error) {
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ValidateWithFile(cfg, path), nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
