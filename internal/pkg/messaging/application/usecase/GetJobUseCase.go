package usecase

import (
	"context"

	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type GetJobInput struct {
	EventID string
	JobID   string
}

// JobDetail is a job with its messages counted per status.
type JobDetail struct {
	messaging.Job
	Breakdown messaging.Breakdown
}

type GetJobUseCase struct {
	Repo repository.MessagingRepository
}

func NewGetJobUseCase(repo repository.MessagingRepository) *GetJobUseCase {
	return &GetJobUseCase{Repo: repo}
}

func (uc *GetJobUseCase) Execute(ctx context.Context, in GetJobInput) (*JobDetail, error) {
	job, err := uc.Repo.GetJob(ctx, in.EventID, in.JobID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	b, err := uc.Repo.Breakdown(ctx, job.ID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &JobDetail{Job: job, Breakdown: b}, nil
}
