package domain

import (
	"context"
	"time"
)

// Event represents a show at a venue. DoorOpenMin and EndMin are wall-clock
// minutes since midnight on the event's date and bound every performance
// slot. Publishing is a one-way transition.
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	VenueID     string     `json:"venue_id"`
	Date        time.Time  `json:"date"`
	DoorOpenMin int        `json:"door_open_min"`
	EndMin      int        `json:"end_min"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new draft Event. ID is typically set by the repository on create.
func NewEvent(name, venueID string, date time.Time, doorOpenMin, endMin int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		VenueID:     venueID,
		Date:        date,
		DoorOpenMin: doorOpenMin,
		EndMin:      endMin,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Actor identifies the authenticated caller of an operation. Authentication
// itself happens outside the engine.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanManage reports whether the actor may mutate this event.
func (e *Event) CanManage(actor Actor) bool {
	return actor.IsAdmin || actor.UserID == e.VenueID
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByVenueID(ctx context.Context, venueID string) ([]*Event, error)
	// Update persists name and window changes for the event.
	Update(ctx context.Context, event *Event) error
	// MarkPublished flips is_published exactly once. Returns (false, nil)
	// when the event was already published.
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) (bool, error)
	// MarkCanceled sets canceled_at exactly once. Returns (false, nil) when
	// the event was already canceled.
	MarkCanceled(ctx context.Context, id string, canceledAt time.Time) (bool, error)
}
