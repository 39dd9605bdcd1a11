package usecase

import (
	"context"

	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type ListJobsUseCase struct {
	Repo repository.MessagingRepository
}

func NewListJobsUseCase(repo repository.MessagingRepository) *ListJobsUseCase {
	return &ListJobsUseCase{Repo: repo}
}

func (uc *ListJobsUseCase) Execute(ctx context.Context, eventID string) ([]messaging.Job, error) {
	jobs, err := uc.Repo.ListJobs(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return jobs, nil
}
