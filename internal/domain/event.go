package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event. Only published events
// accept registrations.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// ValidEventStatus reports whether s is one of the known lifecycle states.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// EventType distinguishes open public events from corporate ones.
type EventType string

const (
	EventTypePublic    EventType = "public"
	EventTypeCorporate EventType = "corporate"
)

// AccessControl holds the optional gating rules for private events.
// A private event with neither an access code nor allowed domains configured
// is merely hidden from anonymous listings; registration is not restricted.
type AccessControl struct {
	IsPrivate      bool     `json:"is_private"`
	AccessCode     string   `json:"access_code,omitempty"`
	AllowedDomains []string `json:"allowed_domains,omitempty"`
}

// Event represents an event attendees can register for.
// RegisteredCount is a denormalized aggregate of confirmed registrations; it
// is mutated only through EventRepository.IncrementRegisteredCount and
// DecrementRegisteredCount.
// swagger:model Event
type Event struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	EventType       EventType     `json:"event_type"`
	OrganizerID     string        `json:"organizer_id"`
	Date            time.Time     `json:"date"`
	StartTime       string        `json:"start_time"`
	Location        string        `json:"location"`
	IsVirtual       bool          `json:"is_virtual"`
	Capacity        int           `json:"capacity"`
	RegisteredCount int           `json:"registered_count"`
	Image           string        `json:"image,omitempty"`
	Tags            []string      `json:"tags"`
	Status          EventStatus   `json:"status"`
	AccessControl   AccessControl `json:"access_control"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	Search         string
	Category       string
	EventType      EventType
	Status         EventStatus
	UpcomingOnly   bool
	IncludePrivate bool
}

// EventUpdate carries the mutable event fields for partial updates.
// Nil pointers leave the current value untouched, including each
// access-control field on its own. RegisteredCount is deliberately absent.
type EventUpdate struct {
	Title          *string
	Description    *string
	Category       *string
	EventType      *EventType
	Date           *time.Time
	StartTime      *string
	Location       *string
	IsVirtual      *bool
	Capacity       *int
	Image          *string
	Tags           *[]string
	Status         *EventStatus
	IsPrivate      *bool
	AccessCode     *string
	AllowedDomains *[]string
}

// EventRepository defines storage operations for events.
// GetByIDForUpdate and the counter mutations participate in the transaction
// carried by the context (see TxManager); the counter primitives are each a
// single atomic statement and are used only by the registration engine.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	IncrementRegisteredCount(ctx context.Context, id string) error
	DecrementRegisteredCount(ctx context.Context, id string) error
}

// EventService defines organizer-facing event management and public browsing.
type EventService interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	GetByID(ctx context.Context, id string, authenticated bool) (*Event, error)
	List(ctx context.Context, filter EventFilter, authenticated bool) ([]*Event, error)
	ListMyEvents(ctx context.Context, organizerID string) ([]*Event, error)
	Update(ctx context.Context, eventID, callerID string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, eventID, callerID string) error
}

// TxManager runs fn inside a database transaction. Repository calls made
// with the ctx passed to fn join that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
