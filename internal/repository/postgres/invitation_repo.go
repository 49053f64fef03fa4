package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"gigbooking/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

// isUniqueViolation reports whether err is a postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create inserts a pending invitation. The partial unique index on
// (event_id, artist_id) where status in ('pending', 'accepted') makes the
// one-active-invitation invariant atomic; a violation maps to ErrAlreadyActive.
func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, artist_id, status, proposed_start_min, proposed_end_min, notes, supersedes_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var supersedes sql.NullString
	if inv.SupersedesID != nil {
		supersedes = sql.NullString{String: *inv.SupersedesID, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		inv.EventID, inv.ArtistID, inv.Status, inv.ProposedStartMin, inv.ProposedEndMin,
		inv.Notes, supersedes, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyActive
		}
		return err
	}
	return nil
}

const invitationColumns = `id, event_id, artist_id, status, proposed_start_min, proposed_end_min, notes, supersedes_id, responded_at, created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var supersedesNull sql.NullString
	var respondedNull sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.EventID, &inv.ArtistID, &inv.Status,
		&inv.ProposedStartMin, &inv.ProposedEndMin, &inv.Notes,
		&supersedesNull, &respondedNull, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supersedesNull.Valid {
		inv.SupersedesID = &supersedesNull.String
	}
	if respondedNull.Valid {
		inv.RespondedAt = &respondedNull.Time
	}
	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE id = $1
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetActiveByEventAndArtist(ctx context.Context, eventID, artistID string) (*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE event_id = $1 AND artist_id = $2 AND status IN ('pending', 'accepted')
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, eventID, artistID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}

// UpdateStatus moves an invitation from one status to another. The guard on
// the current status makes concurrent transitions lose cleanly with
// ErrNotFound instead of silently overwriting. responded_at is only stamped
// for artist decisions, not organizer cancels.
func (r *invitationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.InvitationStatus, at time.Time) error {
	query := `
		UPDATE invitations
		SET status = $3,
		    responded_at = CASE WHEN $3 IN ('accepted', 'declined') THEN $4 ELSE responded_at END,
		    updated_at = $4
		WHERE id = $1 AND status = $2
	`
	result, err := r.DB.ExecContext(ctx, query, id, from, to, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
