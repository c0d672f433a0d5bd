// Package config loads igsdump settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/iges/export"
	"github.com/tsawler/iges/internal/filters"
)

// FileName is the name of the config file in the home directory.
const FileName = ".igsdump.toml"

// Config holds igsdump settings. Command line flags override these.
type Config struct {
	// Encoding is the charset of input files, e.g. "latin1".
	Encoding string `toml:"encoding"`
	// Lenient keeps parameter data that points at a missing entry as a
	// warning instead of failing the file.
	Lenient bool `toml:"lenient"`
	// Database is the path of the SQLite index used by "index".
	Database string `toml:"database"`
	// Format is the default export format.
	Format string `toml:"format"`
	// Pretty indents JSON exports.
	Pretty bool `toml:"pretty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Format: "json"}
}

// DefaultPath returns ~/.igsdump.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}

// Load reads settings from path over the defaults. An empty path reads
// DefaultPath, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the format and encoding names.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Format) != "" {
		if _, err := export.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	if _, err := filters.LookupEncoding(c.Encoding); err != nil {
		return err
	}
	return nil
}

// Save writes the settings to path.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
