package domain

import "context"

// SocialGraphRepository reads the like/follow edges the audience resolver
// fans in over. The edges are owned by the marketplace's social layer; the
// engine only reads them.
type SocialGraphRepository interface {
	// ListEventLikerIDs returns the user IDs who liked the event directly.
	ListEventLikerIDs(ctx context.Context, eventID string) ([]string, error)
	// ListArtistFollowerIDs returns the user IDs following any of the given
	// artists, deduplicated across artists.
	ListArtistFollowerIDs(ctx context.Context, artistIDs []string) ([]string, error)
}
