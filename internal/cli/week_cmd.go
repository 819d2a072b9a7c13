package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Close, reopen and inspect weekly priorities",
	}

	cmd.AddCommand(
		newWeekStatusCmd(app),
		newWeekSetCmd(app, "close", "Close a week's priorities", true),
		newWeekSetCmd(app, "open", "Reopen a week's priorities", false),
		newWeekConfigCmd(app),
	)

	return cmd
}

func newWeekStatusCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a week is closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, app.now())
			if err != nil {
				return err
			}
			closed, err := app.Weekly.IsWeekClosed(ctx, day)
			if err != nil {
				return err
			}
			cfg, err := app.Weekly.Get(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeekStatus(day, closed, cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "any day in the week (YYYY-MM-DD), default today")
	return cmd
}

func newWeekSetCmd(app *App, use, short string, closeWeek bool) *cobra.Command {
	var (
		actor string
		date  string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day, err := parseDay(date, app.now())
			if err != nil {
				return err
			}
			if closeWeek {
				err = app.Weekly.CloseWeek(ctx, actor, day)
			} else {
				err = app.Weekly.OpenWeek(ctx, actor, day)
			}
			if err != nil {
				return err
			}
			state := "open"
			if closeWeek {
				state = "closed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Week %s is %s.\n",
				formatter.StyleGreen.Render("✔"), domain.WeekKey(day), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "ID of the supervisor or admin")
	cmd.Flags().StringVar(&date, "date", "", "any day in the week (YYYY-MM-DD), default today")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newWeekConfigCmd(app *App) *cobra.Command {
	var (
		actor     string
		cutoff    string
		autoClose bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Set the Friday cutoff and toggle auto close",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := app.Weekly.Get(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cutoff") {
				cutoff = cfg.CutoffTime
			}
			if !cmd.Flags().Changed("auto-close") {
				autoClose = cfg.AutoClose
			}
			cfg, err = app.Weekly.Update(ctx, actor, cutoff, autoClose)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeekStatus(app.now(), cfg.IsClosed(app.now()), cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "ID of the supervisor or admin")
	cmd.Flags().StringVar(&cutoff, "cutoff", "", "Friday cutoff time (HH:MM:SS)")
	cmd.Flags().BoolVar(&autoClose, "auto-close", false, "close the week automatically after the cutoff")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

// parseDay reads a YYYY-MM-DD flag value in now's location; empty means now.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(domain.DateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}
