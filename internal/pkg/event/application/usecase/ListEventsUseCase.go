package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
	repository "go-wedding/internal/pkg/event/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// ListEventsUseCase lists a workspace's events, soonest first; undated events last.
type ListEventsUseCase struct {
	Repo repository.EventRepository
}

func NewListEventsUseCase(repo repository.EventRepository) *ListEventsUseCase {
	return &ListEventsUseCase{Repo: repo}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, workspaceID string) ([]event.Event, error) {
	out, err := uc.Repo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return out, nil
}
