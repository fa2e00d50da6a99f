package cli

import (
	"github.com/spf13/cobra"

	"github.com/aerotrain/flightdeck/internal/account"
	"github.com/aerotrain/flightdeck/internal/buildinfo"
	"github.com/aerotrain/flightdeck/internal/logging"
	"github.com/aerotrain/flightdeck/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive flightdeck dashboard.

The dashboard shows the course catalog, the trainings assigned this session,
and a live activity log. Press 'r' to open the registration wizard, 'a' to
open the training assignment wizard, and ? for the full keybinding reference.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard is the RunE handler for the dashboard command. It loads
// configuration and catalog data, wires the API client, and launches the TUI.
func runDashboard(cmd *cobra.Command, _ []string) error {
	logger := logging.New("dashboard")

	rt, err := buildRuntime(cmd.Context())
	if err != nil {
		return err
	}

	info := buildinfo.GetInfo()
	logger.Info("launching dashboard",
		"version", info.Version,
		"organization", rt.cfg.Profile.Organization,
	)

	return tui.RunTUI(tui.AppConfig{
		Version:      info.Version,
		Store:        rt.store,
		Registrar:    rt.client,
		Enroller:     rt.client,
		Role:         account.Role(rt.cfg.Profile.Role),
		Organization: rt.cfg.Profile.Organization,
		Logger:       logging.New("wizard"),
	})
}
