package services

import (
	"context"
	"log/slog"

	"eventhive/internal/domain"
	"eventhive/internal/metrics"
)

type confirmationJob struct {
	email string
	event *domain.Event
	reg   *domain.Registration
}

// QueueNotifier dispatches registration confirmation emails from a buffered
// channel so the registration path never waits on email delivery. Send
// failures are logged and swallowed; a full queue drops the notification.
type QueueNotifier struct {
	jobs         chan confirmationJob
	emailService domain.EmailService
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewQueueNotifier creates a notifier with the given queue capacity.
func NewQueueNotifier(emailService domain.EmailService, queueSize int, m *metrics.Metrics, logger *slog.Logger) *QueueNotifier {
	return &QueueNotifier{
		jobs:         make(chan confirmationJob, queueSize),
		emailService: emailService,
		metrics:      m,
		logger:       logger,
	}
}

// EnqueueRegistrationConfirmation submits a confirmation email without
// blocking the caller.
func (n *QueueNotifier) EnqueueRegistrationConfirmation(email string, event *domain.Event, reg *domain.Registration) {
	job := confirmationJob{email: email, event: event, reg: reg}
	select {
	case n.jobs <- job:
	default:
		n.metrics.NotificationsDropped.Inc()
		n.logger.Warn("notification queue full, dropping confirmation email",
			"email", email, "event_id", event.ID)
	}
}

// Run consumes the queue until ctx is cancelled.
func (n *QueueNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-n.jobs:
			n.dispatch(ctx, job)
		}
	}
}

func (n *QueueNotifier) dispatch(ctx context.Context, job confirmationJob) {
	data := &domain.RegistrationEmailData{
		Email:      job.email,
		EventTitle: job.event.Title,
		EventDate:  job.event.Date.Format("January 2, 2006"),
		StartTime:  job.event.StartTime,
		Location:   job.event.Location,
		Waitlisted: job.reg.Status == domain.RegistrationStatusWaitlist,
	}
	if err := n.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		n.metrics.EmailsFailed.Inc()
		n.logger.Error("confirmation email failed",
			"email", job.email, "event_id", job.event.ID, "err", err)
		return
	}
	n.metrics.EmailsSent.Inc()
}
