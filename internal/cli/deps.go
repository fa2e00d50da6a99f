package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aerotrain/flightdeck/internal/api"
	"github.com/aerotrain/flightdeck/internal/catalog"
	"github.com/aerotrain/flightdeck/internal/config"
	"github.com/aerotrain/flightdeck/internal/logging"
)

// runtime bundles the collaborators every command needs: the resolved
// configuration, the loaded catalog, and the API client.
type runtime struct {
	cfg        *config.Config
	configPath string
	store      *catalog.Store
	client     *api.Client
}

// buildRuntime loads flightdeck.toml (or defaults when none is found), loads
// the catalog data directory, and constructs the API client with the
// configured timeout.
func buildRuntime(ctx context.Context) (*runtime, error) {
	logger := logging.New("cli")

	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	} else {
		logger.Debug("no config file found, using defaults")
	}

	store, err := catalog.Load(ctx, cfg.Catalog.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %q: %w", cfg.Catalog.DataDir, err)
	}
	courses, sessions, members := store.Counts()
	logger.Debug("catalog loaded",
		"courses", courses, "sessions", sessions, "members", members)

	hc := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	client := api.NewClient(cfg.API.BaseURL,
		api.WithHTTPClient(hc),
		api.WithClientLogger(logging.New("api")),
	)

	return &runtime{cfg: cfg, configPath: path, store: store, client: client}, nil
}
