// Package notify persists per-user notifications and pushes them to live
// subscribers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/push"
	"github.com/alexanderramin/sprintdesk/internal/repository"
	"github.com/google/uuid"
)

// Publisher delivers an encoded payload on a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, msg []byte) error
}

// Message is the content of a notification, independent of its recipient.
type Message struct {
	Type      domain.NotificationType
	Title     string
	Body      string
	CardID    string
	SprintID  string
	ProjectID string
	Metadata  map[string]any
}

// Payload is the JSON document pushed to subscribers.
type Payload struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	TypeDisplay string         `json:"type_display"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Read        bool           `json:"read"`
	CreatedAt   string         `json:"created_at"`
	CardID      *string        `json:"card_id,omitempty"`
	SprintID    *string        `json:"sprint_id,omitempty"`
	ProjectID   *string        `json:"project_id,omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

// NewPayload builds the push document for n.
func NewPayload(n *domain.Notification) Payload {
	meta := n.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return Payload{
		ID:          n.ID,
		Type:        string(n.Type),
		TypeDisplay: n.Type.Label(),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339),
		CardID:      n.CardID,
		SprintID:    n.SprintID,
		ProjectID:   n.ProjectID,
		Metadata:    meta,
	}
}

type Dispatcher struct {
	users         repository.UserRepo
	notifications repository.NotificationRepo
	publisher     Publisher
	logger        *slog.Logger
	now           func() time.Time
}

// NewDispatcher wires a dispatcher. A nil publisher disables push.
func NewDispatcher(users repository.UserRepo, notifications repository.NotificationRepo, publisher Publisher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		logger:        logger,
		now:           time.Now,
	}
}

// Send stores a notification for userID and pushes it. An unknown user
// yields (nil, nil) and nothing is stored. Push failures are logged only.
func (d *Dispatcher) Send(ctx context.Context, userID string, msg Message) (*domain.Notification, error) {
	if _, err := d.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			d.logger.DebugContext(ctx, "skipping notification for unknown user", "user_id", userID, "type", msg.Type)
			return nil, nil
		}
		return nil, fmt.Errorf("loading notification recipient: %w", err)
	}

	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      msg.Type,
		Title:     msg.Title,
		Message:   msg.Body,
		CardID:    optional(msg.CardID),
		SprintID:  optional(msg.SprintID),
		ProjectID: optional(msg.ProjectID),
		Metadata:  msg.Metadata,
		CreatedAt: d.now().UTC(),
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("storing notification: %w", err)
	}

	d.publish(ctx, n)
	return n, nil
}

// SendToMany sends msg to each distinct user in order. Failures for one
// recipient are logged and do not stop the rest.
func (d *Dispatcher) SendToMany(ctx context.Context, userIDs []string, msg Message) []*domain.Notification {
	var sent []*domain.Notification
	for _, id := range Dedupe(userIDs) {
		n, err := d.Send(ctx, id, msg)
		if err != nil {
			d.logger.ErrorContext(ctx, "notification failed", "user_id", id, "type", msg.Type, "error", err)
			continue
		}
		if n != nil {
			sent = append(sent, n)
		}
	}
	return sent
}

func (d *Dispatcher) publish(ctx context.Context, n *domain.Notification) {
	if d.publisher == nil {
		return
	}
	data, err := json.Marshal(NewPayload(n))
	if err != nil {
		d.logger.ErrorContext(ctx, "encoding notification payload", "notification_id", n.ID, "error", err)
		return
	}
	if err := d.publisher.Publish(ctx, push.Channel(n.UserID), data); err != nil {
		d.logger.WarnContext(ctx, "push failed", "notification_id", n.ID, "user_id", n.UserID, "error", err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
