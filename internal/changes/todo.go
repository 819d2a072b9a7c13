package changes

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// TodoChange describes what changed on a card TODO. Only status and comment
// are tracked.
type TodoChange struct {
	Label          string
	OldStatus      domain.TodoStatus
	NewStatus      domain.TodoStatus
	StatusChanged  bool
	CommentChanged bool
}

func (c TodoChange) Changed() bool {
	return c.StatusChanged || c.CommentChanged
}

// DetectTodo compares the stored status and comment with next.
func DetectTodo(prevStatus domain.TodoStatus, prevComment string, next *domain.CardTodo) TodoChange {
	return TodoChange{
		Label:          next.Label,
		OldStatus:      prevStatus,
		NewStatus:      next.Status,
		StatusChanged:  prevStatus != next.Status,
		CommentChanged: strings.TrimSpace(prevComment) != strings.TrimSpace(next.Comment),
	}
}

// Message renders the change for the card's followers. Both parts are
// combined when status and comment changed together.
func (c TodoChange) Message(cardName string) string {
	switch {
	case c.StatusChanged && c.CommentChanged:
		return fmt.Sprintf("TODO %q on card %q moved from %q to %q and its comment was updated.",
			c.Label, cardName, c.OldStatus.Label(), c.NewStatus.Label())
	case c.StatusChanged:
		return fmt.Sprintf("TODO %q on card %q moved from %q to %q.",
			c.Label, cardName, c.OldStatus.Label(), c.NewStatus.Label())
	case c.CommentChanged:
		return fmt.Sprintf("The comment of TODO %q on card %q was updated.", c.Label, cardName)
	default:
		return ""
	}
}

func TodoCreatedMessage(label, cardName string) string {
	return fmt.Sprintf("New TODO %q added to card %q.", label, cardName)
}

func TodoDeletedMessage(label, cardName string) string {
	return fmt.Sprintf("TODO %q was removed from card %q.", label, cardName)
}
