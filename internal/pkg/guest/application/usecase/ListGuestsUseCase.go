package usecase

import (
	"context"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type ListGuestsInput struct {
	EventID string
	Status  string // optional RSVP status filter
}

type ListGuestsUseCase struct {
	Repo repository.GuestRepository
}

func NewListGuestsUseCase(repo repository.GuestRepository) *ListGuestsUseCase {
	return &ListGuestsUseCase{Repo: repo}
}

func (uc *ListGuestsUseCase) Execute(ctx context.Context, in ListGuestsInput) ([]guest.GuestView, error) {
	var filter *guest.RSVPStatus
	if in.Status != "" {
		s := guest.RSVPStatus(in.Status)
		if !s.Valid() {
			return nil, apperr.Validationf("unknown rsvp status %q", in.Status)
		}
		filter = &s
	}
	out, err := uc.Repo.List(ctx, in.EventID, filter)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return out, nil
}
