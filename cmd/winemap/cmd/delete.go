package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"winemap/internal/models"
	"winemap/internal/store"
)

var assumeYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete INDEX",
	Short: "Delete the wine at INDEX (as shown by list)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be an integer: %w", err)
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		confirm := store.ConfirmFunc(store.Confirmed)
		if !assumeYes {
			confirm = prompt(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		deleted, err := a.Store.Delete(cmd.Context(), index, confirm)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
}

// prompt asks on out and reads a yes/no answer from in.
func prompt(in io.Reader, out io.Writer) store.ConfirmFunc {
	return func(index int, r models.WineRecord) bool {
		fmt.Fprintf(out, "Delete #%d %s (%s)? [y/N] ", index, r.Name, r.Location)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
