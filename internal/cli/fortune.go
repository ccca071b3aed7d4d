package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/fortune"
)

func newFortuneCommand(e *env) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "fortune",
		Short: "Draw the fortune for a day",
		Long:  "Print the fortune for a calendar day. The same day always draws the same fortune.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := e.clock.Now()
			if date != "" {
				d, err := duedate.Parse(date, time.Local)
				if err != nil {
					return fmt.Errorf("--date %q: %w", date, err)
				}
				day = d
			}

			r := fortune.Generate(day)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}

			badge := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.Color)).Render(r.Fortune)
			fmt.Fprintf(out, "%s  %s (%s)\n", duedate.Display(r.Date), badge, r.Name)
			fmt.Fprintln(out, r.Description)
			fmt.Fprintf(out, "Lucky items: %s %s\n", r.LuckyItems[0], r.LuckyItems[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to draw for, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
