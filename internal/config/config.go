// Package config loads the application configuration from an optional yaml
// file and the environment using cleanenv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the scaffold engine, and the
// local run journal.
type Config struct {
	// Environment specifies the current running environment (development, production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Scaffold contains all scaffold-engine related configurations
	Scaffold struct {
		// Root is the directory the layout is applied to. Relative paths are
		// resolved against the working directory.
		Root string `env:"SCAFFOLD_ROOT" env-default:"." yaml:"root"`
		// LayoutPath optionally points at a yaml layout file. When empty, the
		// built-in Textocorrector ELE layout is used.
		LayoutPath string `env:"SCAFFOLD_LAYOUT_PATH" env-default:"" yaml:"layoutPath"`
		// DirMode is the octal permission string for created directories.
		DirMode string `env:"SCAFFOLD_DIR_MODE" env-default:"0755" yaml:"dirMode"`
		// FileMode is the octal permission string for created files.
		FileMode string `env:"SCAFFOLD_FILE_MODE" env-default:"0644" yaml:"fileMode"`
	} `yaml:"scaffold"`

	// Journal contains the local run-journal database configurations
	Journal struct {
		// Disabled turns off run recording entirely.
		Disabled bool `env:"JOURNAL_DISABLED" env-default:"false" yaml:"disabled"`
		// Path is the SQLite database file holding recorded runs.
		Path string `env:"JOURNAL_PATH" env-default:"elekit.db" yaml:"path"`
	} `yaml:"journal"`
}

// DirMode parses the configured directory permission string.
func (c *Config) DirMode() (fs.FileMode, error) { return parseMode(c.Scaffold.DirMode) }

// FileMode parses the configured file permission string.
func (c *Config) FileMode() (fs.FileMode, error) { return parseMode(c.Scaffold.FileMode) }

// parseMode converts an octal permission string such as "0755" into a
// fs.FileMode.
func parseMode(s string) (fs.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("could not parse file mode %q: %w", s, err)
	}

	return fs.FileMode(v), nil
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. A missing config file is not an error: the CLI is expected to run
// with defaults and environment variables alone. Any other stat failure (e.g.
// an unreadable path) is surfaced.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}

		return &cfg, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("could not stat config file %q: %w", configPath, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from env: %w", err)
	}

	return &cfg, nil
}
