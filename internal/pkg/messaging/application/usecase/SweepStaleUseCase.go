package usecase

import (
	"context"
	"time"

	"go-wedding/internal/logging"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
)

// SweepStaleUseCase re-enqueues jobs whose worker died mid-run or whose task
// never reached the queue.
type SweepStaleUseCase struct {
	Repo       repository.MessagingRepository
	Queue      Scheduler
	StaleAfter time.Duration
	Now        func() time.Time
}

func NewSweepStaleUseCase(repo repository.MessagingRepository, queue Scheduler, staleAfter time.Duration) *SweepStaleUseCase {
	return &SweepStaleUseCase{Repo: repo, Queue: queue, StaleAfter: staleAfter, Now: time.Now}
}

// Execute returns how many jobs were re-enqueued.
func (uc *SweepStaleUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.Now().UTC()
	jobs, err := uc.Repo.StaleJobs(ctx, now.Add(-uc.StaleAfter))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, j := range jobs {
		if err := uc.Queue.Schedule(ctx, j.ID, time.Time{}); err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("job_id", j.ID).Msg("re-enqueue stale job")
			continue
		}
		if err := uc.Repo.TouchJob(ctx, j.ID, now); err != nil {
			return n, err
		}
		n++
	}
	if n > 0 {
		logging.Ctx(ctx).Info().Int("jobs", n).Msg("stale bulk jobs re-enqueued")
	}
	return n, nil
}
