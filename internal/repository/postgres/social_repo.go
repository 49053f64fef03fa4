package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"gigbooking/internal/domain"
)

type socialGraphRepository struct {
	DB *sql.DB
}

func NewSocialGraphRepository(db *sql.DB) domain.SocialGraphRepository {
	return &socialGraphRepository{
		DB: db,
	}
}

func (r *socialGraphRepository) ListEventLikerIDs(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM event_likes
		WHERE event_id = $1
	`
	return r.queryIDs(ctx, query, eventID)
}

func (r *socialGraphRepository) ListArtistFollowerIDs(ctx context.Context, artistIDs []string) ([]string, error) {
	if len(artistIDs) == 0 {
		return []string{}, nil
	}
	query := `
		SELECT DISTINCT user_id
		FROM artist_follows
		WHERE artist_id = ANY($1)
	`
	return r.queryIDs(ctx, query, pq.Array(artistIDs))
}

func (r *socialGraphRepository) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
