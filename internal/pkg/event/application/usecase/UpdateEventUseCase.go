package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
	repository "go-wedding/internal/pkg/event/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type UpdateEventInput struct {
	EventID string
	Patch   event.Patch
}

type UpdateEventUseCase struct {
	Repo repository.EventRepository
}

func NewUpdateEventUseCase(repo repository.EventRepository) *UpdateEventUseCase {
	return &UpdateEventUseCase{Repo: repo}
}

func (uc *UpdateEventUseCase) Execute(ctx context.Context, in UpdateEventInput) (*event.Event, error) {
	cur, err := uc.Repo.Get(ctx, in.EventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	next := in.Patch.Apply(cur)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.Repo.Update(ctx, next)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &updated, nil
}
