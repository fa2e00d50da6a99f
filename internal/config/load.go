package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the name of the flightdeck configuration file.
const ConfigFileName = "flightdeck.toml"

// FindConfigFile walks up from the given directory to find flightdeck.toml.
// Returns the absolute path to the config file, or an empty string if not
// found. Stops at the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile parses the TOML file at the given path and returns the
// configuration and TOML metadata. The metadata can be used to detect
// unknown keys via MetaData.Undecoded().
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	cfg := NewDefaults()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, md, nil
}

// Load resolves the effective configuration: the explicit path when given,
// otherwise the nearest flightdeck.toml above the working directory,
// otherwise pure defaults. The returned path is empty when defaults were
// used.
func Load(explicitPath string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("resolving working directory: %w", err)
		}
		path, err = FindConfigFile(wd)
		if err != nil {
			return nil, "", err
		}
	}
	if path == "" {
		return NewDefaults(), "", nil
	}

	cfg, md, err := LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}

	result := Validate(cfg, &md)
	if result.HasErrors() {
		return nil, path, fmt.Errorf("invalid config %s:\n%s", path, result)
	}
	return cfg, path, nil
}
