package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"winemap/internal/models"
	"winemap/internal/placement"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print map markers for the (filtered) wines as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		criteria.Type = models.WineType(filterType)
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(placement.Markers(a.Store.Filter(criteria)))
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the known wine regions as JSON map overlays",
	Args:  cobra.NoArgs,
	// The region table is static; no storage is needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(placement.Overlays())
	},
}

func init() {
	addFilterFlags(markersCmd)
}
