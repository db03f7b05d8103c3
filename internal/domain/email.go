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

// RegistrationEmailData holds data for registration confirmation and
// waitlist emails.
type RegistrationEmailData struct {
	Email      string
	EventTitle string
	EventDate  string
	StartTime  string
	Location   string
	Waitlisted bool
}

// EventReminderEmailData holds data for the day-before event reminder.
type EventReminderEmailData struct {
	Email      string
	EventTitle string
	EventDate  string
	StartTime  string
	Location   string
}

// PasswordResetEmailData holds data for the password reset email.
type PasswordResetEmailData struct {
	Email            string
	Token            string
	ExpiresInMinutes int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
	SendEventReminder(ctx context.Context, data *EventReminderEmailData) error
	SendPasswordReset(ctx context.Context, data *PasswordResetEmailData) error
}
