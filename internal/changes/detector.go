// Package changes compares a card's stored state with the state about to be
// saved and renders the differences for audit logs and notifications.
package changes

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
)

type Kind int

const (
	KindNone Kind = iota
	KindCreated
	KindMoved
	KindUpdated
)

func (k Kind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindMoved:
		return "moved"
	case KindUpdated:
		return "updated"
	default:
		return "none"
	}
}

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
	notSet         = "not set"
	nobody         = "nobody"
	unknownUser    = "N/A"
)

// UserNamer resolves user ids to display names.
type UserNamer interface {
	UserName(id string) (string, bool)
}

// Names is a UserNamer backed by a map.
type Names map[string]string

func (n Names) UserName(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}

// CardChange is the outcome of comparing a snapshot with a card.
type CardChange struct {
	Kind Kind
	// Changes holds one human-readable entry per difference. A move has
	// exactly one entry.
	Changes         []string
	OldStatus       domain.CardStatus
	NewStatus       domain.CardStatus
	CommentChanged  bool
	AssigneeChanged bool
}

// Summary joins the entries one per line.
func (c CardChange) Summary() string {
	return strings.Join(c.Changes, "\n")
}

// CaptureCard takes the snapshot that a later DetectCard compares against.
func CaptureCard(c *domain.Card) domain.CardSnapshot {
	return domain.CardSnapshot{
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		Priority:    c.Priority,
		Area:        c.Area,
		Type:        c.Type,
		AssigneeID:  copyStr(c.AssigneeID),
		StartAt:     copyTime(c.StartAt),
		EndAt:       copyTime(c.EndAt),
		Complexity:  c.Complexity.Clone(),
		Comment:     c.Comment,
	}
}

// DetectCard classifies the difference between prev and next. A nil prev is
// a creation. A status change is reported alone as a move; otherwise every
// changed field yields one entry.
func DetectCard(prev *domain.CardSnapshot, next *domain.Card, names UserNamer) CardChange {
	if prev == nil {
		return CardChange{Kind: KindCreated, NewStatus: next.Status}
	}

	change := CardChange{
		OldStatus:      prev.Status,
		NewStatus:      next.Status,
		CommentChanged: strings.TrimSpace(prev.Comment) != strings.TrimSpace(next.Comment),
	}

	if prev.Status != next.Status {
		change.Kind = KindMoved
		change.Changes = []string{fmt.Sprintf("moved from %q to %q", prev.Status.Label(), next.Status.Label())}
		return change
	}

	var out []string
	if strings.TrimSpace(prev.Name) != strings.TrimSpace(next.Name) {
		out = append(out, fmt.Sprintf("Name: %q → %q", prev.Name, next.Name))
	}
	if strings.TrimSpace(prev.Description) != strings.TrimSpace(next.Description) {
		out = append(out, fmt.Sprintf("Description: %q → %q", excerpt(prev.Description), excerpt(next.Description)))
	}
	if prev.Priority != next.Priority {
		out = append(out, fmt.Sprintf("Priority: %s → %s", prev.Priority.Label(), next.Priority.Label()))
	}
	if prev.Area != next.Area {
		out = append(out, fmt.Sprintf("Area: %s → %s", prev.Area.Label(), next.Area.Label()))
	}
	if prev.Type != next.Type {
		out = append(out, fmt.Sprintf("Type: %s → %s", prev.Type.Label(), next.Type.Label()))
	}
	if deref(prev.AssigneeID) != deref(next.AssigneeID) {
		change.AssigneeChanged = true
		out = append(out, fmt.Sprintf("Assignee: %s → %s",
			assigneeName(prev.AssigneeID, names), assigneeName(next.AssigneeID, names)))
	}
	if !sameTime(prev.StartAt, next.StartAt) {
		out = append(out, fmt.Sprintf("Start date: %s → %s", formatDate(prev.StartAt), formatDate(next.StartAt)))
	}
	if !sameTime(prev.EndAt, next.EndAt) {
		out = append(out, fmt.Sprintf("End date: %s → %s", formatDate(prev.EndAt), formatDate(next.EndAt)))
	}
	if !prev.Complexity.Equal(next.Complexity) {
		out = append(out, ComplexityBlock(next.Complexity))
	}
	if change.CommentChanged {
		out = append(out, "Comment: updated")
	}

	if len(out) == 0 {
		change.Kind = KindNone
		return change
	}
	change.Kind = KindUpdated
	change.Changes = out
	return change
}

// ComplexityBlock renders the complexity as a multi-line entry listing the
// current items.
func ComplexityBlock(c domain.Complexity) string {
	lines := c.Lines()
	if len(lines) == 0 {
		return "Complexity:\n  - none"
	}
	return "Complexity:\n  - " + strings.Join(lines, "\n  - ")
}

func assigneeName(id *string, names UserNamer) string {
	if id == nil || *id == "" {
		return nobody
	}
	if names != nil {
		if name, ok := names.UserName(*id); ok {
			return name
		}
	}
	return unknownUser
}

func formatDate(t *time.Time) string {
	if t == nil {
		return notSet
	}
	return t.Format(dateLayout)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(empty)"
	}
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
