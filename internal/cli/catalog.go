package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerotrain/flightdeck/internal/enroll"
)

var catalogJSON bool

// catalogCmd lists the course catalog with its scheduled sessions.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the course catalog",
	Long:  "List all courses in the marketplace catalog with their scheduled sessions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := buildRuntime(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		courses := rt.store.Courses()

		if catalogJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(courses)
		}

		if len(courses) == 0 {
			fmt.Fprintln(out, "The catalog is empty.")
			return nil
		}

		for _, c := range courses {
			fmt.Fprintf(out, "%s — %s (%.2f €)\n", c.Title, c.Category, c.Price)
			if c.Prerequisite != "" {
				fmt.Fprintf(out, "  prerequisite: %s\n", c.Prerequisite)
			}
			for _, s := range rt.store.SessionsFor(c.ID) {
				spots := fmt.Sprintf("%d spots", s.AvailableSpots)
				if s.Full() {
					spots = enroll.SpotsBadgeFull
				}
				fmt.Fprintf(out, "  %s  %s — %s · %.2f € · %s\n",
					s.ID, s.Start.Format("2006-01-02 15:04"), s.Location, s.Price, spots)
			}
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Output the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}
