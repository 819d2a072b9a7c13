package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/notify"
)

const deadlineLayout = "02/01/2006 15:04"

// Fanout turns committed mutations into notifications. It is the only
// place that decides who hears about what. A nil *Fanout sends nothing.
type Fanout struct {
	dispatcher *notify.Dispatcher
	recipients *notify.Recipients
	logger     *slog.Logger
}

func NewFanout(dispatcher *notify.Dispatcher, recipients *notify.Recipients, logger *slog.Logger) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{dispatcher: dispatcher, recipients: recipients, logger: logger}
}

func (f *Fanout) send(ctx context.Context, userIDs []string, msg notify.Message) int {
	if f == nil || len(userIDs) == 0 {
		return 0
	}
	return len(f.dispatcher.SendToMany(ctx, userIDs, msg))
}

func (f *Fanout) audienceFailed(ctx context.Context, audience string, err error) {
	f.logger.WarnContext(ctx, "resolving notification audience", "audience", audience, "error", err)
}

func cardMeta(c *domain.Card, p *domain.Project) map[string]any {
	return map[string]any{"card_name": c.Name, "project_name": p.Name}
}

func (f *Fanout) cardCreated(ctx context.Context, c *domain.Card, p *domain.Project, creatorName string) {
	if f == nil {
		return
	}
	base := notify.Message{
		Type:      domain.NotifyCardCreated,
		CardID:    c.ID,
		ProjectID: p.ID,
		Metadata:  cardMeta(c, p),
	}

	var assignee string
	if c.AssigneeID != nil {
		assignee = *c.AssigneeID
		msg := base
		msg.Title = "New card assigned"
		msg.Body = fmt.Sprintf("A new card %q was created and assigned to you.", c.Name)
		f.send(ctx, []string{assignee}, msg)
	}
	if p.ManagerID != nil && *p.ManagerID != assignee {
		msg := base
		msg.Title = "New card created"
		msg.Body = fmt.Sprintf("A new card %q was created in project %q.", c.Name, p.Name)
		f.send(ctx, []string{*p.ManagerID}, msg)
	}

	if p.IsSuggestions() {
		bosses, err := f.recipients.SupervisorsAndAdmins(ctx)
		if err != nil {
			f.audienceFailed(ctx, "supervisors", err)
			return
		}
		f.send(ctx, bosses, notify.Message{
			Type:      domain.NotifyCardCreated,
			Title:     "New demand created",
			Body:      fmt.Sprintf("A new demand %q was created by %s and awaits evaluation.", c.Name, creatorName),
			CardID:    c.ID,
			ProjectID: p.ID,
			Metadata:  map[string]any{"card_name": c.Name, "creator": creatorName},
		})
	}
}

func (f *Fanout) cardMoved(ctx context.Context, c *domain.Card, p *domain.Project, change changes.CardChange) {
	if f == nil {
		return
	}
	meta := cardMeta(c, p)
	meta["old_status"] = string(change.OldStatus)
	meta["new_status"] = string(change.NewStatus)
	f.send(ctx, notify.AssigneeAndManager(c, p), notify.Message{
		Type:      domain.NotifyCardMoved,
		Title:     "Card moved",
		Body:      movedText(c.Name, change),
		CardID:    c.ID,
		ProjectID: p.ID,
		Metadata:  meta,
	})
}

func (f *Fanout) cardUpdated(ctx context.Context, c *domain.Card, p *domain.Project, change changes.CardChange, creatorName string) {
	if f == nil {
		return
	}
	if change.CommentChanged {
		staff, err := f.recipients.Staff(ctx, c, p)
		if err != nil {
			f.audienceFailed(ctx, "staff", err)
		} else {
			f.send(ctx, staff, notify.Message{
				Type:      domain.NotifyCardUpdated,
				Title:     "Card comment updated",
				Body:      fmt.Sprintf("The comment on card %q was updated.", c.Name),
				CardID:    c.ID,
				ProjectID: p.ID,
				Metadata:  map[string]any{"card_name": c.Name, "comment_changed": true},
			})
		}
	}

	meta := cardMeta(c, p)
	meta["changes"] = change.Changes
	f.send(ctx, notify.AssigneeAndManager(c, p), notify.Message{
		Type:      domain.NotifyCardUpdated,
		Title:     "Card updated",
		Body:      updatedText(c.Name, change),
		CardID:    c.ID,
		ProjectID: p.ID,
		Metadata:  meta,
	})

	if p.IsSuggestions() {
		bosses, err := f.recipients.SupervisorsAndAdmins(ctx)
		if err != nil {
			f.audienceFailed(ctx, "supervisors", err)
			return
		}
		f.send(ctx, bosses, notify.Message{
			Type:      domain.NotifyCardUpdated,
			Title:     "Demand updated",
			Body:      fmt.Sprintf("Demand %q created by %s was updated.", c.Name, creatorName),
			CardID:    c.ID,
			ProjectID: p.ID,
			Metadata:  map[string]any{"card_name": c.Name, "creator": creatorName, "changes": change.Changes},
		})
	}
}

func (f *Fanout) cardDeleted(ctx context.Context, c *domain.Card, p *domain.Project) {
	if f == nil {
		return
	}
	f.send(ctx, notify.AssigneeAndManager(c, p), notify.Message{
		Type:      domain.NotifyCardDeleted,
		Title:     "Card deleted",
		Body:      fmt.Sprintf("Card %q was deleted.", c.Name),
		ProjectID: p.ID,
		Metadata:  cardMeta(c, p),
	})
}

func (f *Fanout) sprintCreated(ctx context.Context, s *domain.Sprint) {
	if f == nil {
		return
	}
	everyone, err := f.recipients.AllActive(ctx)
	if err != nil {
		f.audienceFailed(ctx, "active users", err)
		return
	}
	f.send(ctx, everyone, notify.Message{
		Type:     domain.NotifySprintCreated,
		Title:    "New sprint created",
		Body:     fmt.Sprintf("Sprint %q was created.", s.Name),
		SprintID: s.ID,
		Metadata: map[string]any{"sprint_name": s.Name},
	})
}

func (f *Fanout) projectCreated(ctx context.Context, p *domain.Project, s *domain.Sprint) {
	if f == nil || p.ManagerID == nil {
		return
	}
	f.send(ctx, []string{*p.ManagerID}, notify.Message{
		Type:      domain.NotifyProjectCreated,
		Title:     "New project assigned",
		Body:      fmt.Sprintf("A new project %q was created and assigned to you.", p.Name),
		ProjectID: p.ID,
		SprintID:  s.ID,
		Metadata:  map[string]any{"project_name": p.Name, "sprint_name": s.Name},
	})
}

func (f *Fanout) roleChanged(ctx context.Context, u *domain.User, oldRole domain.Role) {
	if f == nil {
		return
	}
	f.send(ctx, []string{u.ID}, notify.Message{
		Type:     domain.NotifyRoleChanged,
		Title:    "Role changed",
		Body:     fmt.Sprintf("Your role was changed to %s.", u.Role.Label()),
		Metadata: map[string]any{"old_role": string(oldRole), "new_role": string(u.Role)},
	})
}

func (f *Fanout) todoChanged(ctx context.Context, c *domain.Card, p *domain.Project, title, body string, meta map[string]any) {
	if f == nil {
		return
	}
	staff, err := f.recipients.Staff(ctx, c, p)
	if err != nil {
		f.audienceFailed(ctx, "staff", err)
		return
	}
	meta["card_name"] = c.Name
	f.send(ctx, staff, notify.Message{
		Type:      domain.NotifyCardTodoUpdated,
		Title:     title,
		Body:      body,
		CardID:    c.ID,
		ProjectID: p.ID,
		Metadata:  meta,
	})
}

var deadlineTitles = map[domain.NotificationType]string{
	domain.NotifyCardOverdue:  "Card overdue",
	domain.NotifyCardDue24h:   "Card due in 24 hours",
	domain.NotifyCardDue1h:    "Card due in 1 hour",
	domain.NotifyCardDue10min: "Card due in 10 minutes",
}

var deadlinePhrases = map[domain.NotificationType]string{
	domain.NotifyCardOverdue:  "is overdue",
	domain.NotifyCardDue24h:   "is due in 24 hours",
	domain.NotifyCardDue1h:    "is due in 1 hour",
	domain.NotifyCardDue10min: "is due in 10 minutes",
}

// deadline notifies the card's assignee and manager and returns how many
// notifications were stored.
func (f *Fanout) deadline(ctx context.Context, c *domain.Card, p *domain.Project, t domain.NotificationType) int {
	if f == nil || c.EndAt == nil {
		return 0
	}
	due := c.EndAt.Format(deadlineLayout)
	meta := cardMeta(c, p)
	meta["end_at"] = due
	return f.send(ctx, notify.AssigneeAndManager(c, p), notify.Message{
		Type:      t,
		Title:     deadlineTitles[t],
		Body:      fmt.Sprintf("Card %q %s. Due: %s", c.Name, deadlinePhrases[t], due),
		CardID:    c.ID,
		ProjectID: p.ID,
		Metadata:  meta,
	})
}

func movedText(name string, change changes.CardChange) string {
	return fmt.Sprintf("Card %q moved from %q to %q.", name, change.OldStatus.Label(), change.NewStatus.Label())
}

func updatedText(name string, change changes.CardChange) string {
	if len(change.Changes) == 0 {
		return fmt.Sprintf("Card %q was updated.", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Card %q was updated:", name)
	for _, entry := range change.Changes {
		b.WriteString("\n• ")
		b.WriteString(entry)
	}
	return b.String()
}
