package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type AssignGuestInput struct {
	EventID string
	TableID string
	GuestID string
}

// AssignGuestUseCase seats a guest (with their whole party) at a table of the
// same event. Moving a guest between tables frees their previous seats.
type AssignGuestUseCase struct {
	Repo repository.SeatingRepository
}

func NewAssignGuestUseCase(repo repository.SeatingRepository) *AssignGuestUseCase {
	return &AssignGuestUseCase{Repo: repo}
}

func (uc *AssignGuestUseCase) Execute(ctx context.Context, in AssignGuestInput) error {
	err := uc.Repo.AssignGuest(ctx, in.EventID, in.GuestID, in.TableID, seating.CheckFit)
	if err != nil {
		return apperr.FromRepository(err)
	}
	return nil
}

type UnassignGuestInput struct {
	EventID string
	GuestID string
}

type UnassignGuestUseCase struct {
	Repo repository.SeatingRepository
}

func NewUnassignGuestUseCase(repo repository.SeatingRepository) *UnassignGuestUseCase {
	return &UnassignGuestUseCase{Repo: repo}
}

func (uc *UnassignGuestUseCase) Execute(ctx context.Context, in UnassignGuestInput) error {
	if err := uc.Repo.UnassignGuest(ctx, in.EventID, in.GuestID); err != nil {
		return apperr.FromRepository(err)
	}
	return nil
}
