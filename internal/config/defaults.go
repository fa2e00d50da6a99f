package config

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 30,
		},
		Catalog: CatalogConfig{
			DataDir: "data/catalog",
		},
		Profile: ProfileConfig{
			Role: "org",
		},
	}
}
