package usecase

import (
	"context"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type UpdateGuestInput struct {
	EventID string
	GuestID string
	Patch   guest.Patch
}

type UpdateGuestUseCase struct {
	Repo  repository.GuestRepository
	Stats *RSVPStatsUseCase
}

func NewUpdateGuestUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase) *UpdateGuestUseCase {
	return &UpdateGuestUseCase{Repo: repo, Stats: stats}
}

func (uc *UpdateGuestUseCase) Execute(ctx context.Context, in UpdateGuestInput) (*guest.GuestView, error) {
	cur, err := uc.Repo.Get(ctx, in.EventID, in.GuestID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	next, err := in.Patch.Apply(cur.Guest)
	if err != nil {
		return nil, err
	}
	if cur.RSVP.Status == guest.StatusAccepted && cur.RSVP.PartySize > next.InvitedCount {
		return nil, apperr.Validationf("invited count cannot drop below the accepted party size (%d)", cur.RSVP.PartySize)
	}
	updated, err := uc.Repo.Update(ctx, next)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	if updated.InvitedCount != cur.InvitedCount {
		uc.Stats.Invalidate(ctx, in.EventID)
	}
	return &guest.GuestView{Guest: updated, RSVP: cur.RSVP}, nil
}
