package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Inspect and finalize sprints",
	}

	cmd.AddCommand(
		newSprintListCmd(app),
		newSprintNextCmd(app),
		newSprintFinalizeCmd(app),
	)

	return cmd
}

func newSprintListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sprints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sprints, err := app.Sprints.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sprints) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No sprints."))
				return nil
			}
			today := app.now()
			rows := make([][]string, 0, len(sprints))
			for _, s := range sprints {
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					formatter.Bold(s.Name),
					s.StartDate.Format(domain.DateLayout),
					s.EndDate.Format(domain.DateLayout),
					sprintState(s, today),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "NAME", "START", "END", "STATE"}, rows))
			return nil
		},
	}
}

func newSprintNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next <sprint>",
		Short: "Show which sprint would receive a sprint's open cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := resolveSprint(ctx, app, args[0])
			if err != nil {
				return err
			}
			next, err := app.Sprints.NextSprint(ctx, src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNextSprint(src, next))
			return nil
		},
	}
}

func newSprintFinalizeCmd(app *App) *cobra.Command {
	var (
		actor string
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "finalize <sprint>",
		Short: "Finalize a sprint and copy its open work into the next one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.Users.RequireSupervisor(ctx, actor); err != nil {
				return err
			}
			src, err := resolveSprint(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes && !src.Finalized {
				if !app.interactive() {
					return fmt.Errorf("refusing to finalize %q without --yes in a non-interactive session", src.Name)
				}
				next, err := app.Sprints.NextSprint(ctx, src)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNextSprint(src, next))
				ok, err := app.confirm(fmt.Sprintf("Finalize %s?", src.Name), "Finalize")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			res, err := app.Sprints.Finalize(ctx, src.ID, actor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFinalize(src, res))
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "ID of the supervisor or admin finalizing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("actor")

	return cmd
}

func sprintState(s *domain.Sprint, now time.Time) string {
	switch {
	case s.Finalized:
		return formatter.Dim("finalized")
	case s.InProgress(now):
		return formatter.StyleGreen.Render("in progress")
	case domain.Day(now).After(domain.Day(s.EndDate)):
		return formatter.StyleYellow.Render("ended")
	default:
		return formatter.StyleBlue.Render("upcoming")
	}
}
