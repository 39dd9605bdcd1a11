package usecase

import (
	"context"
	"strings"
	"time"

	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type CreateJobInput struct {
	EventID     string
	CreatedBy   string
	Channel     messaging.Channel
	Template    string
	Audience    messaging.Audience
	ScheduledAt *time.Time
}

// CreateJobUseCase renders a campaign for every guest in the audience with a
// phone number and queues it for the worker.
type CreateJobUseCase struct {
	Repo          repository.MessagingRepository
	Events        EventReader
	Guests        GuestLister
	Queue         Scheduler
	PublicBaseURL string
	Now           func() time.Time
}

func NewCreateJobUseCase(repo repository.MessagingRepository, events EventReader, guests GuestLister, queue Scheduler, publicBaseURL string) *CreateJobUseCase {
	return &CreateJobUseCase{
		Repo:          repo,
		Events:        events,
		Guests:        guests,
		Queue:         queue,
		PublicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		Now:           time.Now,
	}
}

// RSVPLink is the public page a guest answers on.
func RSVPLink(base, token string) string {
	return base + "/rsvp/" + token
}

func (uc *CreateJobUseCase) Execute(ctx context.Context, in CreateJobInput) (*messaging.Job, error) {
	if !in.Channel.Valid() {
		return nil, apperr.Validationf("unknown channel %q", in.Channel)
	}
	if in.Audience == "" {
		in.Audience = messaging.AudienceAll
	}
	if !in.Audience.Valid() {
		return nil, apperr.Validationf("unknown audience %q", in.Audience)
	}
	if err := messaging.ValidateTemplate(in.Template); err != nil {
		return nil, err
	}
	now := uc.Now().UTC()
	if in.ScheduledAt != nil {
		at := in.ScheduledAt.UTC()
		if !at.After(now) {
			at = now
		}
		in.ScheduledAt = &at
	}

	e, err := uc.Events.Get(ctx, in.EventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	guests, err := uc.Guests.List(ctx, in.EventID, in.Audience.RSVPFilter())
	if err != nil {
		return nil, apperr.FromRepository(err)
	}

	msgs := make([]messaging.Message, 0, len(guests))
	for _, g := range guests {
		if g.Phone == "" {
			continue
		}
		guestID := g.ID
		msgs = append(msgs, messaging.Message{
			EventID: e.ID,
			GuestID: &guestID,
			Channel: in.Channel,
			To:      g.Phone,
			Body: messaging.Render(in.Template, messaging.Vars{
				Name:     g.Name,
				Event:    e.Title,
				Date:     e.DateLabel(),
				Venue:    e.Venue,
				RSVPLink: RSVPLink(uc.PublicBaseURL, g.InviteToken),
			}),
			Status: messaging.MessagePending,
		})
	}

	job := messaging.Job{
		EventID:     e.ID,
		WorkspaceID: e.WorkspaceID,
		Channel:     in.Channel,
		Template:    in.Template,
		Audience:    in.Audience,
		Status:      messaging.JobQueued,
		CreatedBy:   in.CreatedBy,
		ScheduledAt: in.ScheduledAt,
	}
	if len(msgs) == 0 {
		job.Status = messaging.JobCompleted
		job.FinishedAt = &now
	}
	created, err := uc.Repo.CreateJob(ctx, job, msgs)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	if created.Status == messaging.JobCompleted {
		metrics.BulkJobs.WithLabelValues(string(messaging.JobCompleted)).Inc()
		return &created, nil
	}

	var at time.Time
	if created.ScheduledAt != nil {
		at = *created.ScheduledAt
	}
	if err := uc.Queue.Schedule(ctx, created.ID, at); err != nil {
		// The stale-job sweep re-enqueues queued jobs that never started.
		logging.Ctx(ctx).Error().Err(err).Str("job_id", created.ID).Msg("enqueue bulk job")
	}
	logging.Ctx(ctx).Info().
		Str("job_id", created.ID).
		Str("event_id", created.EventID).
		Str("channel", string(created.Channel)).
		Int("recipients", created.Total).
		Msg("bulk job created")
	return &created, nil
}
