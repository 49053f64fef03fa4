package services

import (
	"context"
	"fmt"
	"log"

	"gigbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendArtistInvite sends the "you are invited" email using the "artist_invite" template.
func (s *emailService) SendArtistInvite(ctx context.Context, data *domain.ArtistInviteEmailData) error {
	if data == nil {
		return fmt.Errorf("artist invite data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("artist_invite", data)
	if err != nil {
		return fmt.Errorf("failed to render artist_invite template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send artist invite email: %w", err)
	}
	log.Printf("[EMAIL] Artist invite sent to %s", data.Email)
	return nil
}
