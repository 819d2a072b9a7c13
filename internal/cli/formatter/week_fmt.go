package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// FormatWeekStatus shows whether day's week is closed and how auto close is
// configured.
func FormatWeekStatus(day time.Time, closed bool, cfg *domain.WeeklyPriorityConfig) string {
	state := StyleGreen.Render("● open")
	if closed {
		state = StyleRed.Render("■ closed")
	}
	auto := Dim("off")
	if cfg.AutoClose {
		auto = fmt.Sprintf("Fridays after %s", cfg.CutoffTime)
	}
	rows := [][]string{
		{"Week of", domain.WeekKey(day)},
		{"Priorities", state},
		{"Auto close", auto},
	}
	return RenderBox("Weekly priorities", RenderTable([]string{"", ""}, rows))
}
