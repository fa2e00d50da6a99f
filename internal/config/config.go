// Package config loads and validates flightdeck.toml.
package config

// Config is the top-level configuration structure mapping to flightdeck.toml.
type Config struct {
	API     APIConfig     `toml:"api"`
	Catalog CatalogConfig `toml:"catalog"`
	Profile ProfileConfig `toml:"profile"`
}

// APIConfig maps to the [api] section.
type APIConfig struct {
	// BaseURL is the marketplace API root, without a trailing slash.
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds each API call. Zero means the built-in default.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// CatalogConfig maps to the [catalog] section.
type CatalogConfig struct {
	// DataDir is the directory scanned (recursively) for catalog TOML files.
	DataDir string `toml:"data_dir"`
}

// ProfileConfig maps to the [profile] section.
type ProfileConfig struct {
	// Role preselects the registration wizard's role.
	Role string `toml:"role"`
	// Organization is the display name used on the dashboard.
	Organization string `toml:"organization"`
}
