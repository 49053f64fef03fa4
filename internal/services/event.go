package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gigbooking/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	slotRepo       domain.ScheduleSlotRepository
	notifier       domain.NotificationService
	locks          *EventLocks
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	slotRepo domain.ScheduleSlotRepository,
	notifier domain.NotificationService,
	locks *EventLocks,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		slotRepo:       slotRepo,
		notifier:       notifier,
		locks:          locks,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.VenueID == "" {
		return fmt.Errorf("event venue is required")
	}
	if event.DoorOpenMin >= event.EndMin {
		return domain.ErrInvalidRange
	}

	event.IsPublished = false
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, []*domain.Invitation, []*domain.ScheduleSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get event: %w", err)
	}

	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}

	slots, err := s.slotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list slots: %w", err)
	}
	if slots == nil {
		slots = []*domain.ScheduleSlot{}
	}

	return event, invs, slots, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, eventID, name string) (*domain.Event, error) {
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
	if event.IsPublished {
		return nil, domain.ErrAlreadyPublished
	}
	if event.CanceledAt != nil {
		return nil, domain.ErrIllegalState
	}

	event.Name = name
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Readiness(ctx context.Context, eventID string) (domain.Readiness, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return domain.Readiness{}, fmt.Errorf("list invitations: %w", err)
	}
	return domain.EvaluateReadiness(invs), nil
}

func (s *eventService) Publish(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventID)
	defer unlock()

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
	if event.CanceledAt != nil {
		return nil, domain.ErrIllegalState
	}
	if event.IsPublished {
		// Publishing twice is a no-op success so callers can retry safely.
		return event, nil
	}

	invs, err := s.invitationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	readiness := domain.EvaluateReadiness(invs)
	if !readiness.IsReady {
		return nil, &domain.NotReadyError{
			Accepted:     readiness.Accepted,
			TotalInvited: readiness.TotalInvited,
			Pending:      readiness.Pending,
		}
	}

	now := time.Now()
	published, err := s.eventRepo.MarkPublished(ctx, eventID, now)
	if err != nil {
		return nil, fmt.Errorf("mark published: %w", err)
	}
	event.IsPublished = true
	if published {
		event.PublishedAt = &now
		event.UpdatedAt = now
		s.fanoutChange(ctx, event, domain.NotificationEventPublished,
			fmt.Sprintf("%s is now live", event.Name))
	}
	return event, nil
}

func (s *eventService) Reschedule(ctx context.Context, actor domain.Actor, eventID string, doorOpenMin, endMin int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	unlock := s.locks.Lock(eventID)
	defer unlock()

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
	if event.CanceledAt != nil {
		return nil, domain.ErrIllegalState
	}
	if doorOpenMin >= endMin {
		return nil, domain.ErrInvalidRange
	}

	// The new window must still contain every committed slot.
	slots, err := s.slotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	for _, slot := range slots {
		if slot.StartMin < doorOpenMin || slot.EndMin > endMin {
			return nil, domain.ErrOutsideWindow
		}
	}

	event.DoorOpenMin = doorOpenMin
	event.EndMin = endMin
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	if event.IsPublished {
		s.fanoutChange(ctx, event, domain.NotificationEventRescheduled,
			fmt.Sprintf("%s changed its schedule", event.Name))
	}
	return event, nil
}

func (s *eventService) CancelEvent(ctx context.Context, actor domain.Actor, eventID string) error {
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
	if event.CanceledAt != nil {
		return domain.ErrIllegalState
	}

	now := time.Now()
	canceled, err := s.eventRepo.MarkCanceled(ctx, eventID, now)
	if err != nil {
		return fmt.Errorf("mark canceled: %w", err)
	}
	if canceled && event.IsPublished {
		event.CanceledAt = &now
		s.fanoutChange(ctx, event, domain.NotificationEventCanceled,
			fmt.Sprintf("%s has been canceled", event.Name))
	}
	return nil
}

// fanoutChange resolves the event's audience and fans the change out.
// Best-effort: a fanout failure never rolls back the state change.
func (s *eventService) fanoutChange(ctx context.Context, event *domain.Event, notifType, message string) {
	audience, err := s.notifier.ResolveAudience(ctx, event)
	if err != nil {
		s.logger.Warn("audience resolution failed", "event_id", event.ID, "type", notifType, "error", err)
		return
	}
	data := map[string]any{"event_id": event.ID}
	if err := s.notifier.Fanout(ctx, event.ID, audience, notifType, message, data); err != nil {
		s.logger.Warn("notification fanout failed", "event_id", event.ID, "type", notifType, "error", err)
	}
}
