package domain

import (
	"context"
	"time"
)

// Notification types emitted by the engine.
const (
	NotificationInviteReceived   = "invite.received"
	NotificationInviteAccepted   = "invite.accepted"
	NotificationInviteDeclined   = "invite.declined"
	NotificationEventPublished   = "event.published"
	NotificationEventRescheduled = "event.rescheduled"
	NotificationEventCanceled    = "event.canceled"
	NotificationLineupChanged    = "event.lineup_changed"
)

// Notification is one row in a recipient's notification center. Rows are
// written by the fanout component or by direct 1:1 sends; only the IsRead
// flag is mutated afterwards, outside this engine.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationRepository defines storage operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	// CreateBatch inserts all notifications in one statement, skipping rows
	// that already exist. A partial duplicate never fails the batch.
	CreateBatch(ctx context.Context, ns []*Notification) error
}
