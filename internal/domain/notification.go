package domain

import "time"

type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	CardID    *string
	SprintID  *string
	ProjectID *string
	Metadata  map[string]any
	CreatedAt time.Time
}

// UnreadCounts is the badge data for a user's inbox. Mine excludes
// sprint announcements.
type UnreadCounts struct {
	Total int `json:"total"`
	Mine  int `json:"mine"`
}

type CardLog struct {
	ID          string
	CardID      string
	EventType   LogEventType
	Description string
	UserID      *string
	CreatedAt   time.Time
}
