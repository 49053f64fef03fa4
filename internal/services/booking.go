package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gigbooking/internal/domain"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	slotRepo       domain.ScheduleSlotRepository
	artistRepo     domain.ArtistRepository
	notifier       domain.NotificationService
	emailService   domain.EmailService
	locks          *EventLocks
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewBookingService(eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	slotRepo domain.ScheduleSlotRepository,
	artistRepo domain.ArtistRepository,
	notifier domain.NotificationService,
	emailService domain.EmailService,
	locks *EventLocks,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		slotRepo:       slotRepo,
		artistRepo:     artistRepo,
		notifier:       notifier,
		emailService:   emailService,
		locks:          locks,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *bookingService) Invite(ctx context.Context, actor domain.Actor, params domain.InviteParams) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(params.EventID)
	defer unlock()

	event, err := s.eventRepo.GetByID(ctx, params.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanManage(actor) {
		return nil, domain.ErrForbidden
	}
	if event.CanceledAt != nil {
		return nil, domain.ErrIllegalState
	}

	artist, err := s.artistRepo.GetByID(ctx, params.ArtistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	if err := event.ValidateWindow(params.ProposedStartMin, params.ProposedEndMin); err != nil {
		return nil, err
	}

	_, err = s.invitationRepo.GetActiveByEventAndArtist(ctx, params.EventID, params.ArtistID)
	if err == nil {
		return nil, domain.ErrAlreadyActive
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get active invitation: %w", err)
	}

	if params.ReplaceDeclinedOf != nil {
		prior, err := s.invitationRepo.GetByID(ctx, *params.ReplaceDeclinedOf)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrIllegalState
			}
			return nil, fmt.Errorf("get superseded invitation: %w", err)
		}
		if prior.Status != domain.StatusDeclined || prior.EventID != params.EventID || prior.ArtistID != params.ArtistID {
			return nil, domain.ErrIllegalState
		}
	}

	// Pending proposals may compete for the same window; only committed
	// slots block a new invitation.
	slots, err := s.slotRepo.ListByEventID(ctx, params.EventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	for _, slot := range slots {
		if slot.Overlaps(params.ProposedStartMin, params.ProposedEndMin, domain.DefaultStage) {
			return nil, domain.ErrOverlap
		}
	}

	now := time.Now()
	inv := domain.NewInvitation(params.EventID, params.ArtistID, params.ProposedStartMin, params.ProposedEndMin, params.Notes, now, now)
	inv.SupersedesID = params.ReplaceDeclinedOf
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrAlreadyActive) {
			return nil, domain.ErrAlreadyActive
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.notifyInvited(ctx, event, artist, inv)
	return inv, nil
}

// notifyInvited sends the 1:1 "you are invited" notification and email.
// Both are best-effort: the invitation row is already committed.
func (s *bookingService) notifyInvited(ctx context.Context, event *domain.Event, artist *domain.Artist, inv *domain.Invitation) {
	message := fmt.Sprintf("You are invited to perform at %s", event.Name)
	data := map[string]any{
		"event_id":      event.ID,
		"invitation_id": inv.ID,
	}
	if err := s.notifier.NotifyUser(ctx, artist.ID, domain.NotificationInviteReceived, message, data); err != nil {
		s.logger.Warn("invite notification failed", "event_id", event.ID, "artist_id", artist.ID, "error", err)
	}
	if artist.Email == "" {
		return
	}
	emailData := &domain.ArtistInviteEmailData{
		Email:      artist.Email,
		ArtistName: artist.Name,
		EventName:  event.Name,
		EventDate:  event.Date.Format("2006-01-02"),
		SlotStart:  formatMinutes(inv.ProposedStartMin),
		SlotEnd:    formatMinutes(inv.ProposedEndMin),
		Notes:      inv.Notes,
	}
	if err := s.emailService.SendArtistInvite(ctx, emailData); err != nil {
		s.logger.Warn("invite email failed", "event_id", event.ID, "artist_id", artist.ID, "error", err)
	}
}

// formatMinutes renders minutes since midnight as HH:MM.
func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (s *bookingService) Respond(ctx context.Context, eventID, artistID string, decision domain.InvitationStatus) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if decision != domain.StatusAccepted && decision != domain.StatusDeclined {
		return nil, domain.ErrIllegalState
	}

	unlock := s.locks.Lock(eventID)
	defer unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CanceledAt != nil {
		return nil, domain.ErrIllegalState
	}

	inv, err := s.invitationRepo.GetActiveByEventAndArtist(ctx, eventID, artistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get active invitation: %w", err)
	}

	now := time.Now()
	if decision == domain.StatusAccepted {
		// First acceptance wins: a range that has come to overlap a slot
		// committed since the invite must be re-proposed.
		slots, err := s.slotRepo.ListByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		for _, slot := range slots {
			if slot.ArtistID == artistID {
				continue
			}
			if slot.Overlaps(inv.ProposedStartMin, inv.ProposedEndMin, domain.DefaultStage) {
				return nil, domain.ErrOverlap
			}
		}
		if inv.Status == domain.StatusPending {
			if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, domain.StatusPending, domain.StatusAccepted, now); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, domain.ErrNotFound
				}
				return nil, fmt.Errorf("accept invitation: %w", err)
			}
			inv.Status = domain.StatusAccepted
			inv.RespondedAt = &now
			inv.UpdatedAt = now
		}
		// The slot is a pure derivation of the accepted invitation and the
		// upsert is keyed on (event, artist); committing it here even when
		// the row was already accepted lets a retry converge after the
		// status write landed but the slot commit did not.
		slot := domain.SlotFromInvitation(inv, now)
		if err := s.slotRepo.Upsert(ctx, slot); err != nil {
			return nil, fmt.Errorf("commit slot: %w", err)
		}
	} else {
		if inv.Status != domain.StatusPending {
			return nil, domain.ErrNotFound
		}
		if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, domain.StatusPending, domain.StatusDeclined, now); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("decline invitation: %w", err)
		}
		inv.Status = domain.StatusDeclined
		inv.RespondedAt = &now
		inv.UpdatedAt = now
	}

	s.notifyResponded(ctx, event, inv)
	if event.IsPublished {
		s.fanoutLineupChange(ctx, event, inv)
	}
	return inv, nil
}

// fanoutLineupChange tells the audience of a published event that its lineup
// moved. The scope carries the artist so changes for different artists on
// the same event produce distinct rows while a retry of the same change is
// still skipped. Best-effort, like every fanout.
func (s *bookingService) fanoutLineupChange(ctx context.Context, event *domain.Event, inv *domain.Invitation) {
	audience, err := s.notifier.ResolveAudience(ctx, event)
	if err != nil {
		s.logger.Warn("audience resolution failed", "event_id", event.ID, "artist_id", inv.ArtistID, "error", err)
		return
	}
	message := fmt.Sprintf("%s updated its lineup", event.Name)
	data := map[string]any{
		"event_id":  event.ID,
		"artist_id": inv.ArtistID,
	}
	scope := event.ID + "|" + inv.ArtistID + "|" + string(inv.Status)
	if err := s.notifier.Fanout(ctx, scope, audience, domain.NotificationLineupChanged, message, data); err != nil {
		s.logger.Warn("lineup fanout failed", "event_id", event.ID, "artist_id", inv.ArtistID, "error", err)
	}
}

// notifyResponded tells the event owner about the artist's decision.
func (s *bookingService) notifyResponded(ctx context.Context, event *domain.Event, inv *domain.Invitation) {
	notifType := domain.NotificationInviteAccepted
	message := fmt.Sprintf("An artist accepted their slot for %s", event.Name)
	if inv.Status == domain.StatusDeclined {
		notifType = domain.NotificationInviteDeclined
		message = fmt.Sprintf("An artist declined their invitation to %s", event.Name)
	}
	data := map[string]any{
		"event_id":      event.ID,
		"artist_id":     inv.ArtistID,
		"invitation_id": inv.ID,
	}
	if err := s.notifier.NotifyUser(ctx, event.VenueID, notifType, message, data); err != nil {
		s.logger.Warn("response notification failed", "event_id", event.ID, "artist_id", inv.ArtistID, "error", err)
	}
}

func (s *bookingService) CancelInvite(ctx context.Context, actor domain.Actor, eventID, artistID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventID)
	defer unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !event.CanManage(actor) {
		return domain.ErrForbidden
	}
	if event.IsPublished {
		return domain.ErrIllegalState
	}

	inv, err := s.invitationRepo.GetActiveByEventAndArtist(ctx, eventID, artistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get active invitation: %w", err)
	}
	if inv.Status != domain.StatusPending {
		// An accepted artist has a committed slot; withdrawing them is a
		// lineup-removal flow this engine does not implement.
		return domain.ErrIllegalState
	}

	if err := s.invitationRepo.UpdateStatus(ctx, inv.ID, domain.StatusPending, domain.StatusCanceled, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel invitation: %w", err)
	}
	return nil
}

func (s *bookingService) ListInvitations(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanManage(actor) {
		return nil, domain.ErrForbidden
	}
	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
