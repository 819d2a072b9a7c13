package cli

import (
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/cli/formatter"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App) *cobra.Command {
	var (
		userID  string
		filter  repository.NotificationFilter
		readAll bool
	)

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Print a user's notifications and unread counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if readAll {
				n, err := app.Notifications.MarkAllRead(ctx, userID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s Marked %d notifications read.\n", formatter.StyleGreen.Render("✔"), n)
			}

			ns, err := app.Notifications.List(ctx, userID, filter)
			if err != nil {
				return err
			}
			counts, err := app.Notifications.UnreadCounts(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatNotifications(ns, app.now()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatUnreadCounts(counts))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "recipient user ID")
	cmd.Flags().BoolVar(&filter.MineOnly, "mine", false, "hide sprint announcements")
	cmd.Flags().BoolVar(&filter.UnreadOnly, "unread", false, "only unread notifications")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "maximum number to show (0 for all)")
	cmd.Flags().BoolVar(&readAll, "read-all", false, "mark everything read first")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newInboxCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Browse and mark a user's notifications interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("inbox needs a terminal; use \"notifications\" instead")
			}
			if _, err := app.Users.GetByID(cmd.Context(), userID); err != nil {
				return err
			}
			m := newInboxModel(cmd.Context(), app, userID)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "recipient user ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
