package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gigbooking/internal/domain"
)

type artistRepository struct {
	DB *sql.DB
}

func NewArtistRepository(db *sql.DB) domain.ArtistRepository {
	return &artistRepository{
		DB: db,
	}
}

func (r *artistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM artists
		WHERE id = $1
	`
	a := &domain.Artist{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
