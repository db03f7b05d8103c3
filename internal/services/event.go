package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventhive/internal/domain"
)

const maxCapacity = 100_000

// ListingCache caches public event listings. Implementations treat failures
// as cache misses; a nil cache disables caching.
type ListingCache interface {
	GetListing(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, bool)
	SetListing(ctx context.Context, filter domain.EventFilter, events []*domain.Event)
}

type eventService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	cache     ListingCache
	logger    *slog.Logger
}

// NewEventService creates an EventService. cache may be nil.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, cache ListingCache, logger *slog.Logger) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		cache:     cache,
		logger:    logger,
	}
}

func validateEventFields(e *domain.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.StartTime) == "" {
		return fmt.Errorf("%w: start_time is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if e.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	if e.Capacity > maxCapacity {
		return fmt.Errorf("%w: capacity cannot exceed %d", domain.ErrInvalidInput, maxCapacity)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	if organizer.Role != domain.RoleOrganizer {
		return nil, domain.ErrForbidden
	}

	if event.EventType == "" {
		event.EventType = domain.EventTypePublic
	}
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}
	if event.Status != domain.EventStatusDraft && event.Status != domain.EventStatusPublished {
		return nil, fmt.Errorf("%w: new events must be draft or published", domain.ErrInvalidInput)
	}
	if err := validateEventFields(event); err != nil {
		return nil, err
	}
	event.RegisteredCount = 0

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string, authenticated bool) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.AccessControl.IsPrivate && !authenticated {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, authenticated bool) ([]*domain.Event, error) {
	filter.IncludePrivate = authenticated

	// Only the anonymous listing is cached: it is the hot path and carries
	// no caller-specific data.
	cacheable := !authenticated && s.cache != nil
	if cacheable {
		if events, ok := s.cache.GetListing(ctx, filter); ok {
			return events, nil
		}
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	if cacheable {
		s.cache.SetListing(ctx, filter, events)
	}
	return events, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events by organizer: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, eventID, callerID string, update domain.EventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Category != nil {
		event.Category = *update.Category
	}
	if update.EventType != nil {
		event.EventType = *update.EventType
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.StartTime != nil {
		event.StartTime = *update.StartTime
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.IsVirtual != nil {
		event.IsVirtual = *update.IsVirtual
	}
	if update.Capacity != nil {
		event.Capacity = *update.Capacity
	}
	if update.Image != nil {
		event.Image = *update.Image
	}
	if update.Tags != nil {
		event.Tags = *update.Tags
	}
	if update.Status != nil {
		if !domain.ValidEventStatus(*update.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *update.Status)
		}
		event.Status = *update.Status
	}
	if update.IsPrivate != nil {
		event.AccessControl.IsPrivate = *update.IsPrivate
	}
	if update.AccessCode != nil {
		event.AccessControl.AccessCode = *update.AccessCode
	}
	if update.AllowedDomains != nil {
		event.AccessControl.AllowedDomains = *update.AllowedDomains
	}

	if err := validateEventFields(event); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, callerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != callerID {
		return domain.ErrForbidden
	}

	// Registrations cascade at the database level.
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
