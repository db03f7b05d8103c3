package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the state of a registration. Confirmed registrations
// count against event capacity; waitlisted ones do not.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
	RegistrationStatusWaitlist  RegistrationStatus = "waitlist"
)

// Registration represents one user's registration for one event. At most one
// registration exists per (event, user) pair regardless of status; a
// cancelled registration still occupies the pair.
// swagger:model Registration
type Registration struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	UserID           string             `json:"user_id"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
}

// NewRegistration returns a new Registration. ID is set by the repository on create.
func NewRegistration(eventID, userID string, status RegistrationStatus, registrationDate time.Time) *Registration {
	return &Registration{
		EventID:          eventID,
		UserID:           userID,
		Status:           status,
		RegistrationDate: registrationDate,
	}
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// Attendee is one confirmed registrant of an event, as shown to organizers.
type Attendee struct {
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	RegistrationDate time.Time `json:"registration_date"`
}

// RegistrationRepository defines storage operations for registrations.
// Create reports a unique-constraint violation on (event, user) as
// ErrAlreadyRegistered.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) error
	ListConfirmedByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListAttendeesByEventID(ctx context.Context, eventID string) ([]*Attendee, error)
}

// RegistrationService is the registration engine: it decides whether a
// registration is confirmed, waitlisted, or rejected, and keeps the event's
// registered count consistent with the set of confirmed registrations.
type RegistrationService interface {
	// Register registers the user for the event. The returned registration's
	// status is confirmed or waitlist depending on remaining capacity.
	Register(ctx context.Context, eventID, userID, userEmail, accessCode string) (*Registration, error)
	// Cancel marks the user's registration cancelled and frees the seat if it
	// was confirmed. Waitlisted registrations are not promoted.
	Cancel(ctx context.Context, eventID, userID string) error
	ListMyRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
	// ListEventAttendees returns confirmed attendees; only the event's
	// organizer may call it.
	ListEventAttendees(ctx context.Context, eventID, callerID string) ([]*Attendee, error)
}

// Notifier accepts outbound notifications without blocking the caller.
// Delivery is best-effort; failures are logged, never surfaced.
type Notifier interface {
	EnqueueRegistrationConfirmation(email string, event *Event, reg *Registration)
}
