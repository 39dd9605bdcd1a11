package usecase

import (
	"context"
	"time"

	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type CancelJobInput struct {
	EventID string
	JobID   string
}

// CancelJobUseCase stops a queued or running job. A worker mid-chunk notices
// the cancellation before its next chunk.
type CancelJobUseCase struct {
	Repo repository.MessagingRepository
	Now  func() time.Time
}

func NewCancelJobUseCase(repo repository.MessagingRepository) *CancelJobUseCase {
	return &CancelJobUseCase{Repo: repo, Now: time.Now}
}

func (uc *CancelJobUseCase) Execute(ctx context.Context, in CancelJobInput) (*messaging.Job, error) {
	job, err := uc.Repo.CancelJob(ctx, in.EventID, in.JobID, uc.Now().UTC())
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	metrics.BulkJobs.WithLabelValues(string(messaging.JobCancelled)).Inc()
	logging.Ctx(ctx).Info().Str("job_id", job.ID).Int("skipped", job.Skipped).Msg("bulk job cancelled")
	return &job, nil
}
