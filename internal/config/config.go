// Package config holds the run configuration and loads the optional
// project file (.version-register.yaml or .version-register.toml) that
// supplies defaults for the command-line flags.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/version-register/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Built-in defaults.
const (
	DefaultPath        = "."
	DefaultEnv         = "development"
	DefaultRegisterDir = "version-register"
)

// FileNames lists the config files looked up in the working directory,
// in priority order.
var FileNames = []string{
	".version-register.yaml",
	".version-register.yml",
	".version-register.toml",
}

// Config is the resolved configuration for one run.
type Config struct {
	// Path is the root directory to analyze. Command line only.
	Path string `yaml:"-" toml:"-"`

	// Env is the environment label recorded in each row.
	Env string `yaml:"env" toml:"env"`

	// Recursive enables descent into subdirectories.
	Recursive bool `yaml:"recursive" toml:"recursive"`

	// RegisterDir is where the dated CSV files are kept, relative to the
	// working directory unless absolute.
	RegisterDir string `yaml:"register_dir" toml:"register_dir"`

	// Exclude holds glob patterns matched against directory names; matching
	// subdirectories are not descended into.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// NoColor disables styled output.
	NoColor bool `yaml:"no_color" toml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Path:        DefaultPath,
		Env:         DefaultEnv,
		RegisterDir: DefaultRegisterDir,
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Env) == "" {
		return fmt.Errorf("env must not be empty")
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Load reads the config file at explicit, or the first of FileNames found in
// dir when explicit is empty. It returns the configuration and the file it
// came from; with no file present the defaults are returned with an empty
// source.
func Load(ctx context.Context, fsys core.FileSystem, dir, explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := loadFile(ctx, fsys, explicit)
		if err != nil {
			return Default(), "", err
		}
		return cfg, explicit, nil
	}

	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := fsys.Stat(ctx, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Default(), "", fmt.Errorf("failed to stat config file %q: %w", path, err)
		}

		cfg, err := loadFile(ctx, fsys, path)
		if err != nil {
			return Default(), "", err
		}
		return cfg, path, nil
	}

	return Default(), "", nil
}

// loadFile decodes path on top of the defaults, picking the decoder by
// extension.
func loadFile(ctx context.Context, fsys core.FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %q: %w", path, err)
		}
	default:
		if len(bytes.TrimSpace(data)) > 0 {
			decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
			if err := decoder.Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config %q: %w", path, err)
			}
		}
	}

	if cfg.Env == "" {
		cfg.Env = DefaultEnv
	}
	if cfg.RegisterDir == "" {
		cfg.RegisterDir = DefaultRegisterDir
	}
	cfg.Path = DefaultPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	return cfg, nil
}
