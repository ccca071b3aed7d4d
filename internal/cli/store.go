package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newStoreCommand(e *env) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the data file",
	}

	storeCmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			defer e.close()

			entries, err := e.kv.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", e.cfg.Data.Path)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No keys.")
				return nil
			}

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Key", "Bytes", "Updated")
			for _, en := range entries {
				tbl.Row(en.Key, strconv.Itoa(len(en.Value)), en.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintln(out, tbl.String())
			return nil
		},
	})

	return storeCmd
}
