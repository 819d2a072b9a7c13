package cli

import (
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/jobs"
	"github.com/spf13/cobra"
)

var sweepAliases = map[string]string{
	"deadlines": jobs.DeadlineScan,
	"rollover":  jobs.SprintRollover,
	"weekly":    jobs.WeeklyAutoClose,
}

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "sweep [deadlines|rollover|weekly|all]",
		Short:     "Run the scheduled sweeps once, now",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"deadlines", "rollover", "weekly", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Jobs == nil {
				return fmt.Errorf("no job runner configured")
			}
			which := "all"
			if len(args) == 1 {
				which = args[0]
			}

			var names []string
			if which == "all" {
				names = app.Jobs.Names()
			} else {
				name, ok := sweepAliases[which]
				if !ok {
					name = which
				}
				names = []string{name}
			}

			var failed int
			for _, name := range names {
				if err := app.Jobs.RunOnce(cmd.Context(), name); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", formatter.StyleRed.Render("✗"), name, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔"), name)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sweeps failed", failed, len(names))
			}
			return nil
		},
	}
}
