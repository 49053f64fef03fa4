package domain

import (
	"context"
	"time"
)

// DefaultStage is the stage assigned to every slot. The product models a
// single main stage per venue.
const DefaultStage = "Main"

// ScheduleSlot is the committed, conflict-checked performance booking for an
// accepted invitation. It is strictly derived from the invitation's accepted
// proposed range and recomputable from it.
type ScheduleSlot struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ArtistID  string    `json:"artist_id"`
	Stage     string    `json:"stage"`
	StartMin  int       `json:"start_min"`
	EndMin    int       `json:"end_min"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotFromInvitation derives the slot for an accepted invitation. Pure;
// deriving twice yields the same slot.
func SlotFromInvitation(inv *Invitation, now time.Time) *ScheduleSlot {
	return &ScheduleSlot{
		EventID:   inv.EventID,
		ArtistID:  inv.ArtistID,
		Stage:     DefaultStage,
		StartMin:  inv.ProposedStartMin,
		EndMin:    inv.ProposedEndMin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Overlaps reports whether the slot intersects the given range on the same stage.
func (s *ScheduleSlot) Overlaps(startMin, endMin int, stage string) bool {
	return s.Stage == stage && RangesOverlap(s.StartMin, s.EndMin, startMin, endMin)
}

// ScheduleSlotRepository defines storage operations for committed slots.
type ScheduleSlotRepository interface {
	// Upsert commits a slot keyed on (event_id, artist_id). Committing
	// twice for the same pair updates in place rather than duplicating.
	Upsert(ctx context.Context, slot *ScheduleSlot) error
	ListByEventID(ctx context.Context, eventID string) ([]*ScheduleSlot, error)
}
