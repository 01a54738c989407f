package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"winemap/internal/models"
)

var (
	draft     models.Draft
	wineType  string
	imagePath string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a wine",
	Example: `  winemap add --name "Château Test" --location ボルドー --grape Merlot
  winemap add --name Koshu --type white --location 勝沼 --image label.jpg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		draft.Type = models.WineType(wineType)
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			draft.Image = data
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.Store.Add(cmd.Context(), &draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) at %.4f, %.4f\n", rec.Name, rec.Location, rec.Lat, rec.Lng)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&draft.Name, "name", "", "wine name (required)")
	addCmd.Flags().StringVar(&draft.Location, "location", "", "place of origin, e.g. a region name (required)")
	addCmd.Flags().StringVar(&draft.Grape, "grape", "", "grape variety")
	addCmd.Flags().StringVar(&draft.Comment, "comment", "", "tasting note")
	addCmd.Flags().StringVar(&wineType, "type", "", "red, white, rose, sparkling, orange or other (default red)")
	addCmd.Flags().StringVar(&draft.ImageURL, "image-url", "", "link to a label photo")
	addCmd.Flags().StringVar(&imagePath, "image", "", "label photo to embed")
}
