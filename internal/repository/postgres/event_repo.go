package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gigbooking/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, venue_id, date, door_open_min, end_min, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.VenueID, e.Date, e.DoorOpenMin, e.EndMin, e.IsPublished, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, venue_id, date, door_open_min, end_min, is_published, published_at, canceled_at, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var publishedNull, canceledNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.VenueID, &e.Date, &e.DoorOpenMin, &e.EndMin, &e.IsPublished,
		&publishedNull, &canceledNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if publishedNull.Valid {
		e.PublishedAt = &publishedNull.Time
	}
	if canceledNull.Valid {
		e.CanceledAt = &canceledNull.Time
	}
	return e, nil
}

func (r *eventRepository) ListByVenueID(ctx context.Context, venueID string) ([]*domain.Event, error) {
	query := `
		SELECT id, name, venue_id, date, door_open_min, end_min, is_published, published_at, canceled_at, created_at, updated_at
		FROM events
		WHERE venue_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var publishedNull, canceledNull sql.NullTime
		if err := rows.Scan(&e.ID, &e.Name, &e.VenueID, &e.Date, &e.DoorOpenMin, &e.EndMin, &e.IsPublished,
			&publishedNull, &canceledNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if publishedNull.Valid {
			e.PublishedAt = &publishedNull.Time
		}
		if canceledNull.Valid {
			e.CanceledAt = &canceledNull.Time
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $2, date = $3, door_open_min = $4, end_min = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, e.ID, e.Name, e.Date, e.DoorOpenMin, e.EndMin, e.UpdatedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) (bool, error) {
	query := `
		UPDATE events
		SET is_published = TRUE, published_at = $2, updated_at = $2
		WHERE id = $1 AND is_published = FALSE
	`
	result, err := r.DB.ExecContext(ctx, query, id, publishedAt)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *eventRepository) MarkCanceled(ctx context.Context, id string, canceledAt time.Time) (bool, error) {
	query := `
		UPDATE events
		SET canceled_at = $2, updated_at = $2
		WHERE id = $1 AND canceled_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, id, canceledAt)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
