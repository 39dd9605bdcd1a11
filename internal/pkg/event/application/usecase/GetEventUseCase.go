package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
	repository "go-wedding/internal/pkg/event/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type GetEventUseCase struct {
	Repo repository.EventRepository
}

func NewGetEventUseCase(repo repository.EventRepository) *GetEventUseCase {
	return &GetEventUseCase{Repo: repo}
}

func (uc *GetEventUseCase) Execute(ctx context.Context, eventID string) (*event.Event, error) {
	e, err := uc.Repo.Get(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &e, nil
}
