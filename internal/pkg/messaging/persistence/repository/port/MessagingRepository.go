package repository

import (
	"context"
	"time"

	messaging "go-wedding/internal/pkg/messaging/application/domain"
)

// MessagingRepository persists bulk jobs, their messages and provider costs.
type MessagingRepository interface {
	// CreateJob inserts the job and its pending messages in one transaction.
	CreateJob(ctx context.Context, job messaging.Job, msgs []messaging.Message) (messaging.Job, error)
	GetJob(ctx context.Context, eventID, jobID string) (messaging.Job, error)
	// LoadJob reads a job by id alone, for the worker.
	LoadJob(ctx context.Context, jobID string) (messaging.Job, error)
	ListJobs(ctx context.Context, eventID string) ([]messaging.Job, error)
	// TransitionJob moves a job to status when it is currently in one of from.
	// It stamps StartedAt on running and FinishedAt on terminal states.
	TransitionJob(ctx context.Context, jobID string, from []messaging.JobStatus, to messaging.JobStatus, at time.Time) (bool, error)
	// CancelJob marks a queued or running job cancelled and skips its pending
	// messages. Finished jobs yield messaging.ErrJobNotCancellable.
	CancelJob(ctx context.Context, eventID, jobID string, at time.Time) (messaging.Job, error)
	// RecountJob recomputes the job counters from its message rows.
	RecountJob(ctx context.Context, jobID string) (messaging.Job, error)
	TouchJob(ctx context.Context, jobID string, at time.Time) error
	// AcquireLease gives owner exclusive processing of the job until the given
	// time. It fails when another owner holds a lease that has not expired at
	// now; the current owner may call it again to extend its lease.
	AcquireLease(ctx context.Context, jobID, owner string, now, until time.Time) (bool, error)
	ReleaseLease(ctx context.Context, jobID, owner string) error
	// StaleJobs lists running jobs, and queued jobs past their start time, not
	// touched since updatedBefore.
	StaleJobs(ctx context.Context, updatedBefore time.Time) ([]messaging.Job, error)
	Breakdown(ctx context.Context, jobID string) (messaging.Breakdown, error)

	// PendingMessages pages through a job's pending messages in id order,
	// starting after afterID ("" for the first page).
	PendingMessages(ctx context.Context, jobID, afterID string, limit int) ([]messaging.Message, error)
	// TransitionMessage stores m when its stored status still equals from.
	TransitionMessage(ctx context.Context, m messaging.Message, from messaging.MessageStatus) (bool, error)
	SkipPending(ctx context.Context, jobID, reason string, at time.Time) (int64, error)
	FindByProviderID(ctx context.Context, providerMessageID string) (messaging.Message, error)

	LogCost(ctx context.Context, c messaging.CostLog) error
	CostSummary(ctx context.Context, eventID string) ([]messaging.CostLine, error)

	// EventMessages and EventCosts export an event's full history for archiving.
	EventMessages(ctx context.Context, eventID string) ([]messaging.Message, error)
	EventCosts(ctx context.Context, eventID string) ([]messaging.CostLog, error)
}
