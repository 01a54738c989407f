package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"winemap/internal/models"
	"winemap/internal/placement"
	"winemap/internal/store"
)

var criteria store.Criteria
var filterType string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recorded wines as a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		criteria.Type = models.WineType(filterType)
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		printEntries(cmd.OutOrStdout(), a.Store.Entries(criteria))
		return nil
	},
}

func init() {
	addFilterFlags(listCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterType, "type", "", "only this type; all for every type")
	cmd.Flags().StringVar(&criteria.Grape, "grape", "", "only grapes containing this text")
	cmd.Flags().StringVar(&criteria.Location, "location", "", "only locations containing this text")
}

var pinPrinters = map[placement.PinColor]*color.Color{
	placement.PinRed:    color.New(color.FgRed),
	placement.PinBlue:   color.New(color.FgBlue),
	placement.PinGreen:  color.New(color.FgGreen),
	placement.PinPink:   color.New(color.FgHiMagenta),
	placement.PinOrange: color.New(color.FgYellow),
	placement.PinGrey:   color.New(color.FgHiBlack),
}

func colorType(t models.WineType) string {
	if c, ok := pinPrinters[placement.ColorFor(t)]; ok {
		return c.Sprint(t)
	}
	return string(t)
}

func printEntries(w io.Writer, entries []store.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No wines recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTYPE\tGRAPE\tLOCATION\tCOMMENT")
	for _, e := range entries {
		r := e.Record
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", e.Index, r.Name, colorType(r.Type), r.Grape, r.Location, r.Comment)
	}
	_ = tw.Flush()
}
