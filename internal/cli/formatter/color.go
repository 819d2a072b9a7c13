package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// NotificationStyle colors a notification by urgency: deadlines red or
// yellow, moves blue, sprint announcements purple.
func NotificationStyle(t domain.NotificationType) lipgloss.Style {
	switch t {
	case domain.NotifyCardOverdue, domain.NotifyCardDue10min:
		return StyleRed
	case domain.NotifyCardDue1h, domain.NotifyCardDue24h:
		return StyleYellow
	case domain.NotifyCardMoved:
		return StyleBlue
	case domain.NotifySprintCreated, domain.NotifyProjectCreated:
		return StylePurple
	default:
		return StyleFg
	}
}

// CardStatusPill returns a colored status indicator such as "● In development".
func CardStatusPill(s domain.CardStatus) string {
	switch s {
	case domain.CardToDevelop:
		return StyleBlue.Render("○ " + s.Label())
	case domain.CardInDevelopment, domain.CardInValidation:
		return StyleGreen.Render("● " + s.Label())
	case domain.CardBlocked:
		return StyleRed.Render("■ " + s.Label())
	case domain.CardDone:
		return StyleDim.Render("✔ " + s.Label())
	case domain.CardNotViable:
		return StyleDim.Render("✖ " + s.Label())
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
