package contract

import (
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/notify"
)

// Notification has the same shape over REST and the push stream.
type Notification = notify.Payload

type NotificationList struct {
	Items []Notification `json:"items"`
}

func NewNotificationList(ns []*domain.Notification) NotificationList {
	items := make([]Notification, 0, len(ns))
	for _, n := range ns {
		items = append(items, notify.NewPayload(n))
	}
	return NotificationList{Items: items}
}

type UnreadCounts = domain.UnreadCounts

type MarkedRead struct {
	Updated int `json:"updated"`
}
