package domain

import "context"

// InviteParams carries the organizer's invite request. ReplaceDeclinedOf,
// when set, references a declined invitation being superseded; the declined
// row is kept as history and linked from the new pending row.
type InviteParams struct {
	EventID           string
	ArtistID          string
	ProposedStartMin  int
	ProposedEndMin    int
	Notes             string
	ReplaceDeclinedOf *string
}

// BookingService owns the invitation lifecycle for an event's lineup.
type BookingService interface {
	// Invite creates a pending invitation for the artist. Fails with
	// ErrAlreadyActive when the artist already has a pending or accepted
	// invitation, with window errors from the event's opening window, and
	// with ErrOverlap when the proposed range intersects a committed slot.
	Invite(ctx context.Context, actor Actor, params InviteParams) (*Invitation, error)
	// Respond records the artist's accept or decline of their pending
	// invitation. Accepting commits the schedule slot; a range that has
	// come to overlap a slot accepted in the meantime fails with ErrOverlap
	// and must be re-proposed.
	Respond(ctx context.Context, eventID, artistID string, decision InvitationStatus) (*Invitation, error)
	// CancelInvite withdraws a pending invitation. Legal only while the
	// invitation is pending and the event is unpublished.
	CancelInvite(ctx context.Context, actor Actor, eventID, artistID string) error
	// ListInvitations returns the event's invitations, newest first.
	ListInvitations(ctx context.Context, actor Actor, eventID string) ([]*Invitation, error)
}

// EventService owns the event lifecycle around the lineup: draft creation
// and edits, the publish gate, and the published-event mutations that fan
// out notifications.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	// GetEvent returns the event with its invitations and committed slots.
	GetEvent(ctx context.Context, eventID string) (*Event, []*Invitation, []*ScheduleSlot, error)
	// UpdateEvent renames a draft event. Fails with ErrAlreadyPublished on
	// a published event.
	UpdateEvent(ctx context.Context, actor Actor, eventID, name string) (*Event, error)
	// Readiness reports whether the event's lineup is fully resolved.
	Readiness(ctx context.Context, eventID string) (Readiness, error)
	// Publish flips the event public. Idempotent: publishing a published
	// event is a no-op success. Fails with *NotReadyError while pending
	// invitations remain or no artist has accepted.
	Publish(ctx context.Context, actor Actor, eventID string) (*Event, error)
	// Reschedule moves the event's opening window and notifies the audience
	// when the event is published. Fails with ErrOutsideWindow when a
	// committed slot would fall outside the new window.
	Reschedule(ctx context.Context, actor Actor, eventID string, doorOpenMin, endMin int) (*Event, error)
	// CancelEvent cancels the event one-way and notifies the audience when
	// the event is published.
	CancelEvent(ctx context.Context, actor Actor, eventID string) error
}

// NotificationService resolves audiences and materializes notifications.
type NotificationService interface {
	// ResolveAudience returns the deduplicated user IDs to notify about the
	// event: direct likers plus followers of every accepted artist.
	ResolveAudience(ctx context.Context, event *Event) ([]string, error)
	// Fanout writes one notification per recipient. Empty audiences no-op.
	// Row IDs are derived from (scope, notifType, recipient), so a retried
	// fanout with the same scope regenerates the same IDs and the rows that
	// already landed are skipped, not failed. Distinct changes on one event
	// pass distinct scopes.
	Fanout(ctx context.Context, scope string, audience []string, notifType, message string, data map[string]any) error
	// NotifyUser writes a single 1:1 notification.
	NotifyUser(ctx context.Context, userID, notifType, message string, data map[string]any) error
}
