package usecase

import (
	"context"

	repository "go-wedding/internal/pkg/event/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// WorkspaceOfUseCase resolves the tenant of an event. It satisfies the
// identity middleware's EventWorkspaceResolver.
type WorkspaceOfUseCase struct {
	Repo repository.EventRepository
}

func NewWorkspaceOfUseCase(repo repository.EventRepository) *WorkspaceOfUseCase {
	return &WorkspaceOfUseCase{Repo: repo}
}

func (uc *WorkspaceOfUseCase) WorkspaceOf(ctx context.Context, eventID string) (string, error) {
	ws, err := uc.Repo.WorkspaceOf(ctx, eventID)
	if err != nil {
		return "", apperr.FromRepository(err)
	}
	return ws, nil
}
