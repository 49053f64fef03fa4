package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gigbooking/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
	invitationRepo   domain.InvitationRepository
	socialRepo       domain.SocialGraphRepository
	contextTimeout   time.Duration
}

func NewNotificationService(notificationRepo domain.NotificationRepository,
	invitationRepo domain.InvitationRepository,
	socialRepo domain.SocialGraphRepository,
	timeout time.Duration,
) domain.NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		invitationRepo:   invitationRepo,
		socialRepo:       socialRepo,
		contextTimeout:   timeout,
	}
}

// ResolveAudience unions the event's direct likers with the followers of
// every currently accepted artist, deduplicated. An event nobody likes or
// follows resolves to an empty audience and the fanout no-ops.
func (s *notificationService) ResolveAudience(ctx context.Context, event *domain.Event) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	likers, err := s.socialRepo.ListEventLikerIDs(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list event likers: %w", err)
	}

	invs, err := s.invitationRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	var acceptedArtists []string
	for _, inv := range invs {
		if inv.Status == domain.StatusAccepted {
			acceptedArtists = append(acceptedArtists, inv.ArtistID)
		}
	}

	var followers []string
	if len(acceptedArtists) > 0 {
		followers, err = s.socialRepo.ListArtistFollowerIDs(ctx, acceptedArtists)
		if err != nil {
			return nil, fmt.Errorf("list artist followers: %w", err)
		}
	}

	seen := make(map[string]struct{})
	audience := make([]string, 0, len(likers)+len(followers))
	for _, id := range likers {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		audience = append(audience, id)
	}
	for _, id := range followers {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		audience = append(audience, id)
	}
	return audience, nil
}

// notificationNamespace seeds the deterministic fanout row IDs.
var notificationNamespace = uuid.MustParse("9b1c6a52-7e34-4a1f-8d2b-3f5e0c98d714")

// fanoutID derives the row ID for one recipient of one fanout. A retried
// fanout regenerates the same IDs, so the batch insert's duplicate-skip
// drops the rows that already landed instead of notifying twice.
func fanoutID(scope, notifType, userID string) string {
	return uuid.NewSHA1(notificationNamespace, []byte(scope+"|"+notifType+"|"+userID)).String()
}

func (s *notificationService) Fanout(ctx context.Context, scope string, audience []string, notifType, message string, data map[string]any) error {
	if len(audience) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	ns := make([]*domain.Notification, 0, len(audience))
	for _, userID := range audience {
		ns = append(ns, &domain.Notification{
			ID:        fanoutID(scope, notifType, userID),
			UserID:    userID,
			Type:      notifType,
			Message:   message,
			Data:      data,
			CreatedAt: now,
		})
	}
	if err := s.notificationRepo.CreateBatch(ctx, ns); err != nil {
		return fmt.Errorf("create notification batch: %w", err)
	}
	return nil
}

func (s *notificationService) NotifyUser(ctx context.Context, userID, notifType, message string, data map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
