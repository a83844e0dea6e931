package notifications

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	EntityType string     `json:"entityType"`
	EntityID   string     `json:"entityId"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Message is one notification before it is addressed to its recipients.
type Message struct {
	Type       string
	Title      string
	Body       string
	EntityType string
	EntityID   string
}
