package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventhive/internal/domain"
	"eventhive/internal/metrics"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	txManager        domain.TxManager
	notifier         domain.Notifier
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

// NewRegistrationService creates the registration engine with the given
// repositories and the transaction manager that serializes per-event work.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	txManager domain.TxManager,
	notifier domain.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		txManager:        txManager,
		notifier:         notifier,
		metrics:          m,
		logger:           logger,
	}
}

// Register runs the whole decision procedure inside one transaction with the
// event row locked, so concurrent registrations against the same event are
// serialized: read count, compare to capacity, insert, increment cannot
// interleave. Preconditions are checked in order; the first failure wins.
func (s *registrationService) Register(ctx context.Context, eventID, userID, userEmail, accessCode string) (*domain.Registration, error) {
	var reg *domain.Registration
	var event *domain.Event

	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		ev, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		if ev.Status != domain.EventStatusPublished {
			return domain.ErrEventNotAvailable
		}

		// Any existing registration blocks, cancelled ones included.
		if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
			return domain.ErrAlreadyRegistered
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get registration: %w", err)
		}

		if ev.AccessControl.IsPrivate {
			if err := EvaluateAccess(ev.AccessControl, accessCode, userEmail); err != nil {
				return err
			}
		}

		status := domain.RegistrationStatusConfirmed
		if ev.RegisteredCount >= ev.Capacity {
			status = domain.RegistrationStatusWaitlist
		}

		r := domain.NewRegistration(eventID, userID, status, time.Now())
		if err := s.registrationRepo.Create(ctx, r); err != nil {
			// A concurrent insert for the same pair loses on the unique index.
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("create registration: %w", err)
		}

		if status == domain.RegistrationStatusConfirmed {
			if err := s.eventRepo.IncrementRegisteredCount(ctx, eventID); err != nil {
				return fmt.Errorf("increment registered count: %w", err)
			}
		}

		reg = r
		event = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reg.Status == domain.RegistrationStatusConfirmed {
		s.metrics.RegistrationsConfirmed.Inc()
	} else {
		s.metrics.RegistrationsWaitlisted.Inc()
	}

	// Best-effort; delivery never blocks or fails the registration outcome.
	s.notifier.EnqueueRegistrationConfirmation(userEmail, event, reg)

	return reg, nil
}

// Cancel marks the registration cancelled. The prior status is captured
// before the update so a previously confirmed registration frees its seat
// (the decrement runs inside the same transaction). Waitlisted registrations
// are not promoted when a seat frees up; the next new registrant takes it.
func (s *registrationService) Cancel(ctx context.Context, eventID, userID string) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrRegistrationNotFound
			}
			return fmt.Errorf("get registration: %w", err)
		}

		if reg.Status == domain.RegistrationStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		wasConfirmed := reg.Status == domain.RegistrationStatusConfirmed

		if err := s.registrationRepo.UpdateStatus(ctx, reg.ID, domain.RegistrationStatusCancelled); err != nil {
			return fmt.Errorf("update registration status: %w", err)
		}

		if wasConfirmed {
			if err := s.eventRepo.DecrementRegisteredCount(ctx, eventID); err != nil {
				return fmt.Errorf("decrement registered count: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RegistrationsCancelled.Inc()
	return nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.registrationRepo.ListConfirmedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	// Fetch events one by one (N+1). This keeps the implementation simple;
	// we can optimize later if needed.
	eventsByID := make(map[string]*domain.Event)
	result := make([]*domain.RegistrationWithEvent, 0, len(regs))

	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; skip this entry.
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev,
		})
	}

	return result, nil
}

func (s *registrationService) ListEventAttendees(ctx context.Context, eventID, callerID string) ([]*domain.Attendee, error) {
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

	attendees, err := s.registrationRepo.ListAttendeesByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}
