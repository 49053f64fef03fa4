package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ArtistInviteEmailData holds data for the "you are invited" email sent to
// an artist when an organizer creates an invitation.
type ArtistInviteEmailData struct {
	Email      string
	ArtistName string
	EventName  string
	EventDate  string
	SlotStart  string
	SlotEnd    string
	Notes      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendArtistInvite(ctx context.Context, data *ArtistInviteEmailData) error
}
