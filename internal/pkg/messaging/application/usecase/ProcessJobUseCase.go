package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	notifier "go-wedding/internal/infrastructure/notifier/port"
	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
)

// ProcessSettings tunes the bulk job processor.
type ProcessSettings struct {
	ChunkSize   int
	MaxAttempts int
	GuestLimit  int
	GuestWindow time.Duration
	RetryDelay  time.Duration
	// LeaseFor bounds how long a run may hold a job without renewing its
	// lease. It should match the stale sweep threshold.
	LeaseFor time.Duration
}

// DefaultLeaseFor applies when ProcessSettings.LeaseFor is unset.
const DefaultLeaseFor = 15 * time.Minute

// GuestRateKey is the counter limiting how many messages one guest receives per window.
func GuestRateKey(guestID string) string {
	return "msg:guest:" + guestID
}

// ProcessJobUseCase sends a job's pending messages. It is re-entrant: a run
// that leaves messages pending schedules another run after RetryDelay. Runs
// for the same job are serialised by a lease on the job row; a run that
// finds the lease taken exits without sending.
type ProcessJobUseCase struct {
	Repo      repository.MessagingRepository
	Queue     Scheduler
	Counters  cacheport.Cache
	Limiter   *rate.Limiter
	Notifiers map[messaging.Channel]notifier.Notifier
	// Costs are unit prices per channel in micro-units.
	Costs    map[messaging.Channel]int64
	Settings ProcessSettings
	Now      func() time.Time
}

func NewProcessJobUseCase(
	repo repository.MessagingRepository,
	queue Scheduler,
	counters cacheport.Cache,
	notifiers map[messaging.Channel]notifier.Notifier,
	costs map[messaging.Channel]int64,
	settings ProcessSettings,
	providerRPS float64,
) *ProcessJobUseCase {
	if settings.ChunkSize <= 0 {
		settings.ChunkSize = 100
	}
	if settings.MaxAttempts <= 0 {
		settings.MaxAttempts = 3
	}
	if settings.LeaseFor <= 0 {
		settings.LeaseFor = DefaultLeaseFor
	}
	burst := int(providerRPS)
	if burst < 1 {
		burst = 1
	}
	return &ProcessJobUseCase{
		Repo:      repo,
		Queue:     queue,
		Counters:  counters,
		Limiter:   rate.NewLimiter(rate.Limit(providerRPS), burst),
		Notifiers: notifiers,
		Costs:     costs,
		Settings:  settings,
		Now:       time.Now,
	}
}

func (uc *ProcessJobUseCase) Execute(ctx context.Context, jobID string) error {
	log := logging.Ctx(ctx).With().Str("job_id", jobID).Logger()

	job, err := uc.Repo.LoadJob(ctx, jobID)
	if errors.Is(err, messaging.ErrJobNotFound) {
		log.Warn().Msg("bulk job vanished before processing")
		return nil
	}
	if err != nil {
		return err
	}
	if job.Status.Terminal() {
		return nil
	}

	owner := uuid.NewString()
	held, err := uc.Repo.AcquireLease(ctx, jobID, owner, uc.Now().UTC(), uc.leaseUntil())
	if err != nil {
		return err
	}
	if !held {
		log.Debug().Msg("bulk job is leased by another run")
		return nil
	}
	defer func() {
		if err := uc.Repo.ReleaseLease(context.WithoutCancel(ctx), jobID, owner); err != nil {
			log.Warn().Err(err).Msg("release bulk job lease")
		}
	}()

	if job.Status == messaging.JobQueued {
		if _, err := uc.Repo.TransitionJob(ctx, jobID, []messaging.JobStatus{messaging.JobQueued}, messaging.JobRunning, uc.Now().UTC()); err != nil {
			return err
		}
		log.Info().Int("total", job.Total).Msg("bulk job started")
	}

	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := uc.Repo.LoadJob(ctx, jobID)
		if errors.Is(err, messaging.ErrJobNotFound) {
			log.Warn().Msg("bulk job vanished mid-run")
			return nil
		}
		if err != nil {
			return err
		}
		if current.Status == messaging.JobCancelled {
			n, err := uc.Repo.SkipPending(ctx, jobID, messaging.ReasonCancelled, uc.Now().UTC())
			if err != nil {
				return err
			}
			if _, err := uc.Repo.RecountJob(ctx, jobID); err != nil {
				return err
			}
			log.Info().Int64("skipped", n).Msg("bulk job cancelled")
			return nil
		}

		batch, err := uc.Repo.PendingMessages(ctx, jobID, after, uc.Settings.ChunkSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		for _, m := range batch {
			if err := uc.deliver(ctx, job, m); err != nil {
				return err
			}
			after = m.ID
		}
		now := uc.Now().UTC()
		if err := uc.Repo.TouchJob(ctx, jobID, now); err != nil {
			return err
		}
		held, err := uc.Repo.AcquireLease(ctx, jobID, owner, now, uc.leaseUntil())
		if err != nil {
			return err
		}
		if !held {
			log.Warn().Msg("bulk job lease lost, stopping run")
			return nil
		}
	}
	return uc.finish(ctx, jobID)
}

func (uc *ProcessJobUseCase) leaseUntil() time.Time {
	return uc.Now().UTC().Add(uc.Settings.LeaseFor)
}

// deliver sends one message and stores the outcome. It only returns an error
// when ctx is done or the store fails.
func (uc *ProcessJobUseCase) deliver(ctx context.Context, job messaging.Job, m messaging.Message) error {
	log := logging.Ctx(ctx).With().Str("job_id", job.ID).Str("message_id", m.ID).Logger()

	if m.Attempts == 0 && m.GuestID != nil && uc.Counters != nil && uc.Settings.GuestLimit > 0 {
		n, err := uc.Counters.Incr(ctx, GuestRateKey(*m.GuestID), uc.Settings.GuestWindow)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("guest rate counter unavailable, sending anyway")
		case n > int64(uc.Settings.GuestLimit):
			next := m
			next.Status = messaging.MessageSkipped
			next.LastError = messaging.ReasonRateLimited
			return uc.store(ctx, next, job.Channel)
		}
	}

	if err := uc.Limiter.Wait(ctx); err != nil {
		return err
	}

	next := m
	next.Attempts++
	provider, ok := uc.Notifiers[job.Channel]
	if !ok || provider == nil {
		next.Status = messaging.MessageFailed
		next.LastError = "no provider configured for " + string(job.Channel)
		return uc.store(ctx, next, job.Channel)
	}

	receipt, err := provider.Send(ctx, notifier.Outbound{To: m.To, Body: m.Body, Reference: m.ID})
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	switch {
	case err == nil:
		now := uc.Now().UTC()
		next.Status = messaging.MessageSent
		next.ProviderMessageID = receipt.ProviderMessageID
		next.LastError = ""
		next.SentAt = &now
		if err := uc.store(ctx, next, job.Channel); err != nil {
			return err
		}
		return uc.logCost(ctx, job, m)
	case notifier.IsPermanent(err):
		next.Status = messaging.MessageFailed
		next.LastError = err.Error()
	default:
		next.LastError = err.Error()
		if next.Attempts >= uc.Settings.MaxAttempts {
			next.Status = messaging.MessageFailed
		}
	}
	log.Warn().Err(err).Int("attempts", next.Attempts).Str("status", string(next.Status)).Msg("send failed")
	return uc.store(ctx, next, job.Channel)
}

func (uc *ProcessJobUseCase) store(ctx context.Context, next messaging.Message, channel messaging.Channel) error {
	ok, err := uc.Repo.TransitionMessage(ctx, next, messaging.MessagePending)
	if err != nil {
		return err
	}
	if ok && next.Status != messaging.MessagePending {
		metrics.Messages.WithLabelValues(string(channel), string(next.Status)).Inc()
	}
	return nil
}

func (uc *ProcessJobUseCase) logCost(ctx context.Context, job messaging.Job, m messaging.Message) error {
	amount := uc.Costs[job.Channel]
	eventID := job.EventID
	err := uc.Repo.LogCost(ctx, messaging.CostLog{
		WorkspaceID:  job.WorkspaceID,
		EventID:      &eventID,
		Kind:         messaging.CostMessage,
		Channel:      string(job.Channel),
		Units:        1,
		AmountMicros: amount,
		Reference:    m.ID,
	})
	if err != nil {
		// The message is already out; a lost cost row must not resend it.
		logging.Ctx(ctx).Error().Err(err).Str("message_id", m.ID).Msg("log message cost")
		return nil
	}
	metrics.CostMicros.WithLabelValues(string(messaging.CostMessage)).Add(float64(amount))
	return nil
}

func (uc *ProcessJobUseCase) finish(ctx context.Context, jobID string) error {
	log := logging.Ctx(ctx).With().Str("job_id", jobID).Logger()

	job, err := uc.Repo.RecountJob(ctx, jobID)
	if err != nil {
		return err
	}
	now := uc.Now().UTC()
	if job.Pending() > 0 {
		if err := uc.Repo.TouchJob(ctx, jobID, now); err != nil {
			return err
		}
		log.Info().Int("pending", job.Pending()).Dur("retry_in", uc.Settings.RetryDelay).Msg("bulk job has retries left")
		return uc.Queue.Schedule(ctx, jobID, now.Add(uc.Settings.RetryDelay))
	}

	outcome := job.Outcome()
	ok, err := uc.Repo.TransitionJob(ctx, jobID, []messaging.JobStatus{messaging.JobRunning}, outcome, now)
	if err != nil {
		return err
	}
	if ok {
		metrics.BulkJobs.WithLabelValues(string(outcome)).Inc()
		log.Info().
			Str("status", string(outcome)).
			Int("sent", job.Sent).
			Int("failed", job.Failed).
			Int("skipped", job.Skipped).
			Msg("bulk job finished")
	}
	return nil
}
