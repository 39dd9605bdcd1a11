package usecase

import (
	"context"
	"time"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type AddGuestInput struct {
	EventID string
	Draft   guest.Draft
}

type AddGuestUseCase struct {
	Repo  repository.GuestRepository
	Stats *RSVPStatsUseCase
}

func NewAddGuestUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase) *AddGuestUseCase {
	return &AddGuestUseCase{Repo: repo, Stats: stats}
}

func (uc *AddGuestUseCase) Execute(ctx context.Context, in AddGuestInput) (*guest.GuestView, error) {
	d, err := in.Draft.Normalize()
	if err != nil {
		return nil, err
	}
	created, err := uc.Repo.Create(ctx, []guest.Guest{guest.NewGuest(in.EventID, d, time.Now().UTC())})
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	uc.Stats.Invalidate(ctx, in.EventID)
	return &guest.GuestView{
		Guest: created[0],
		RSVP:  guest.RSVP{GuestID: created[0].ID, Status: guest.StatusPending},
	}, nil
}
