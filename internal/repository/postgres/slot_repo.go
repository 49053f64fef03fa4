package postgres

import (
	"context"
	"database/sql"

	"gigbooking/internal/domain"
)

type scheduleSlotRepository struct {
	DB *sql.DB
}

func NewScheduleSlotRepository(db *sql.DB) domain.ScheduleSlotRepository {
	return &scheduleSlotRepository{
		DB: db,
	}
}

// Upsert commits the slot for an accepted invitation. The unique index on
// (event_id, artist_id) makes a retried commit update in place instead of
// double-booking the artist.
func (r *scheduleSlotRepository) Upsert(ctx context.Context, s *domain.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (event_id, artist_id, stage, start_min, end_min, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id, artist_id)
		DO UPDATE SET stage = EXCLUDED.stage, start_min = EXCLUDED.start_min, end_min = EXCLUDED.end_min, updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		s.EventID, s.ArtistID, s.Stage, s.StartMin, s.EndMin, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func (r *scheduleSlotRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleSlot, error) {
	query := `
		SELECT id, event_id, artist_id, stage, start_min, end_min, created_at, updated_at
		FROM schedule_slots
		WHERE event_id = $1
		ORDER BY start_min ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.ScheduleSlot
	for rows.Next() {
		s := &domain.ScheduleSlot{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.ArtistID, &s.Stage, &s.StartMin, &s.EndMin, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []*domain.ScheduleSlot{}
	}
	return slots, nil
}
