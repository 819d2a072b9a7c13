package changes

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

// DescribeCreated renders the audit description of a newly created card.
func DescribeCreated(c *domain.Card, names UserNamer) string {
	parts := []string{
		fmt.Sprintf("Card %q created with:", c.Name),
		"• Name: " + c.Name,
	}
	if desc := strings.TrimSpace(c.Description); desc != "" {
		r := []rune(desc)
		if len(r) > 100 {
			desc = string(r[:100]) + "..."
		}
		parts = append(parts, "• Description: "+desc)
	}
	parts = append(parts,
		"• Status: "+c.Status.Label(),
		"• Priority: "+c.Priority.Label(),
		"• Area: "+c.Area.Label(),
		"• Type: "+c.Type.Label(),
	)
	if c.AssigneeID != nil && *c.AssigneeID != "" {
		parts = append(parts, "• Assignee: "+assigneeName(c.AssigneeID, names))
	} else {
		parts = append(parts, "• Assignee: not assigned")
	}
	if c.StartAt != nil {
		parts = append(parts, "• Start date: "+c.StartAt.Format(dateTimeLayout))
	}
	if c.EndAt != nil {
		parts = append(parts, "• End date: "+c.EndAt.Format(dateTimeLayout))
	}
	if c.ScriptURL != nil && *c.ScriptURL != "" {
		parts = append(parts, "• Script URL: "+*c.ScriptURL)
	}
	if !c.Complexity.IsEmpty() {
		parts = append(parts, "• "+ComplexityBlock(c.Complexity))
	}
	return strings.Join(parts, "\n")
}
