package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/service"
)

func sprintLine(s *domain.Sprint) string {
	return fmt.Sprintf("%s  %s → %s", Bold(s.Name),
		s.StartDate.Format(domain.DateLayout), s.EndDate.Format(domain.DateLayout))
}

// FormatNextSprint shows where src's open cards would go.
func FormatNextSprint(src, next *domain.Sprint) string {
	var b strings.Builder
	b.WriteString(Dim("from ") + sprintLine(src) + "\n")
	if next == nil {
		b.WriteString(StyleYellow.Render("No destination sprint: open cards would stay behind."))
	} else {
		b.WriteString(Dim("to   ") + sprintLine(next))
	}
	return RenderBox("Next sprint", b.String())
}

// FormatFinalize reports the outcome of one rollover.
func FormatFinalize(src *domain.Sprint, res *service.FinalizeResult) string {
	if res.AlreadyFinalized {
		return StyleDim.Render(fmt.Sprintf("Sprint %q was already finalized; nothing copied.", src.Name))
	}
	rows := [][]string{
		{"Destination", Bold(res.DestinationName)},
		{"Projects created", fmt.Sprint(res.ProjectsCreated)},
		{"Cards copied", fmt.Sprint(res.CardsCopied)},
	}
	return RenderBox("Finalized "+src.Name, RenderTable([]string{"", ""}, rows))
}

// FormatSweep summarizes a rollover sweep.
func FormatSweep(res *service.SweepResult) string {
	style := StyleGreen
	if res.Failed > 0 {
		style = StyleRed
	}
	return style.Render(fmt.Sprintf("%d replicated, %d without destination, %d failed",
		res.Replicated, res.WithoutDestination, res.Failed))
}
