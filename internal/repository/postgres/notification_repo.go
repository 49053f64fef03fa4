package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"gigbooking/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func marshalData(data map[string]any) ([]byte, error) {
	if data == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(data)
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	payload, err := marshalData(n.Data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}
	query := `
		INSERT INTO notifications (id, user_id, type, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.DB.ExecContext(ctx, query, n.ID, n.UserID, n.Type, n.Message, payload, n.IsRead, n.CreatedAt)
	return err
}

// CreateBatch inserts all notifications in one statement. ON CONFLICT DO
// NOTHING gives skip-duplicates semantics: a re-fanout after a retry drops
// the rows that already landed instead of failing the whole batch.
func (r *notificationRepository) CreateBatch(ctx context.Context, ns []*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(ns))
	args := make([]any, 0, len(ns)*7)
	for i, n := range ns {
		payload, err := marshalData(n.Data)
		if err != nil {
			return fmt.Errorf("marshal notification data: %w", err)
		}
		base := i * 7
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, n.ID, n.UserID, n.Type, n.Message, payload, n.IsRead, n.CreatedAt)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, message, data, is_read, created_at)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON CONFLICT DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}
