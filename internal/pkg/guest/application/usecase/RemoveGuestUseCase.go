package usecase

import (
	"context"

	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type RemoveGuestInput struct {
	EventID string
	GuestID string
}

type RemoveGuestUseCase struct {
	Repo  repository.GuestRepository
	Stats *RSVPStatsUseCase
}

func NewRemoveGuestUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase) *RemoveGuestUseCase {
	return &RemoveGuestUseCase{Repo: repo, Stats: stats}
}

func (uc *RemoveGuestUseCase) Execute(ctx context.Context, in RemoveGuestInput) error {
	if err := uc.Repo.Delete(ctx, in.EventID, in.GuestID); err != nil {
		return apperr.FromRepository(err)
	}
	uc.Stats.Invalidate(ctx, in.EventID)
	return nil
}
