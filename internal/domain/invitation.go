package domain

import (
	"context"
	"time"
)

// InvitationStatus is the lifecycle state of an (artist, event) invitation.
type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusAccepted InvitationStatus = "accepted"
	StatusDeclined InvitationStatus = "declined"
	StatusCanceled InvitationStatus = "canceled"
)

// IsActive reports whether the status blocks a new invitation for the same
// (artist, event) pair. Declined and canceled invitations stay as history
// and do not block a re-invite.
func (s InvitationStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

// Invitation records one artist being asked to perform at one event.
// ProposedStartMin/ProposedEndMin are the range offered at invite time; the
// committed slot is derived from them at acceptance and lives in
// ScheduleSlot. Terminal rows are retained for audit, never deleted.
type Invitation struct {
	ID               string           `json:"id"`
	EventID          string           `json:"event_id"`
	ArtistID         string           `json:"artist_id"`
	Status           InvitationStatus `json:"status"`
	ProposedStartMin int              `json:"proposed_start_min"`
	ProposedEndMin   int              `json:"proposed_end_min"`
	Notes            string           `json:"notes"`
	SupersedesID     *string          `json:"supersedes_id,omitempty"`
	RespondedAt      *time.Time       `json:"responded_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// NewInvitation returns a new pending Invitation. ID is typically set by the repository on create.
func NewInvitation(eventID, artistID string, proposedStartMin, proposedEndMin int, notes string, createdAt, updatedAt time.Time) *Invitation {
	return &Invitation{
		EventID:          eventID,
		ArtistID:         artistID,
		Status:           StatusPending,
		ProposedStartMin: proposedStartMin,
		ProposedEndMin:   proposedEndMin,
		Notes:            notes,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	// Create inserts a pending invitation. Returns ErrAlreadyActive when an
	// active (pending/accepted) row already exists for the pair; the
	// storage layer enforces this atomically.
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// GetActiveByEventAndArtist returns the pending or accepted invitation
	// for the pair, or ErrNotFound.
	GetActiveByEventAndArtist(ctx context.Context, eventID, artistID string) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	// UpdateStatus moves an invitation from one status to another. Returns
	// ErrNotFound when the row is no longer in fromStatus, so concurrent
	// transitions lose cleanly.
	UpdateStatus(ctx context.Context, id string, from, to InvitationStatus, respondedAt time.Time) error
}
