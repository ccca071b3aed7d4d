package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/daybook/internal/export"
)

func newExportCommand(e *env) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(export.Formats, format) {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(export.Formats, ", "))
			}
			if err := e.open(); err != nil {
				return err
			}
			defer e.close()

			today := e.clock.Now()
			if out == "" {
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				out = export.DefaultPath(dir, format, today)
			}

			tasks := e.todos.Tasks()
			if err := export.Write(format, tasks, today, out); err != nil {
				e.log.Errorw("export failed", "format", format, "path", out, "error", err)
				return err
			}
			e.log.Infow("export written", "format", format, "path", out, "count", len(tasks))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, json or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default ./daybook-export-<date>.<format>)")
	return cmd
}
