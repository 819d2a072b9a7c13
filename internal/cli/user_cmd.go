package cli

import (
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect users and change roles",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a user's name and role",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := app.Users.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				active := formatter.StyleGreen.Render("active")
				if !u.IsActive {
					active = formatter.Dim("inactive")
				}
				rows := [][]string{
					{"ID", u.ID},
					{"Username", u.Username},
					{"Name", u.DisplayName()},
					{"Role", u.Role.Label()},
					{"Status", active},
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(u.DisplayName(),
					formatter.RenderTable([]string{"", ""}, rows)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "role <id> <role>",
			Short: "Change a user's role and notify them",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				role := domain.Role(args[1])
				if err := app.Users.ChangeRole(cmd.Context(), args[0], role); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Role set to %s.\n",
					formatter.StyleGreen.Render("✔"), role.Label())
				return nil
			},
		},
	)

	return cmd
}
