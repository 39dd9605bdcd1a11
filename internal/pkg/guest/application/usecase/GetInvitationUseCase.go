package usecase

import (
	"context"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// GetInvitationUseCase resolves an invite token to the public invitation page data.
type GetInvitationUseCase struct {
	Repo   repository.GuestRepository
	Events EventReader
}

func NewGetInvitationUseCase(repo repository.GuestRepository, events EventReader) *GetInvitationUseCase {
	return &GetInvitationUseCase{Repo: repo, Events: events}
}

func (uc *GetInvitationUseCase) Execute(ctx context.Context, token string) (*guest.Invitation, error) {
	if token == "" {
		return nil, guest.ErrInvitationNotFound
	}
	g, err := uc.Repo.FindByToken(ctx, token)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	e, err := uc.Events.Get(ctx, g.EventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &guest.Invitation{
		GuestName:    g.Name,
		InvitedCount: g.InvitedCount,
		RSVP:         g.RSVP,
		EventID:      e.ID,
		EventTitle:   e.Title,
		EventDate:    e.EventDate,
		Venue:        e.Venue,
		Address:      e.Address,
		ImageURL:     e.InvitationImageURL,
	}, nil
}
