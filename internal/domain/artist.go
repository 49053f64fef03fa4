package domain

import (
	"context"
	"time"
)

// Artist represents a performer profile. The booking engine reads artists
// but never mutates them.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistRepository defines read access to artist profiles.
type ArtistRepository interface {
	GetByID(ctx context.Context, id string) (*Artist, error)
}
