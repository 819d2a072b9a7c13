package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// FormatNotifications renders a user's inbox as a table, newest first.
func FormatNotifications(ns []*domain.Notification, now time.Time) string {
	if len(ns) == 0 {
		return Dim("No notifications.")
	}
	headers := []string{"", "WHEN", "TYPE", "TITLE", "MESSAGE"}
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		rows = append(rows, []string{
			ReadMark(n.Read),
			Dim(TimestampFrom(n.CreatedAt, now)),
			NotificationStyle(n.Type).Render(n.Type.Label()),
			Bold(n.Title),
			Truncate(FirstLine(n.Message), 60),
		})
	}
	return RenderTable(headers, rows)
}

// ReadMark is a filled dot for unread notifications and blank otherwise.
func ReadMark(read bool) string {
	if read {
		return " "
	}
	return StyleHeader.Render("●")
}

func FormatUnreadCounts(c domain.UnreadCounts) string {
	if c.Total == 0 {
		return StyleGreen.Render("All caught up.")
	}
	return fmt.Sprintf("%s unread (%d addressed to you)", Bold(fmt.Sprint(c.Total)), c.Mine)
}
