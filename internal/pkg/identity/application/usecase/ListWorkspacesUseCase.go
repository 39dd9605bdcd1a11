package usecase

import (
	"context"

	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// ListWorkspacesUseCase returns every workspace the user belongs to, with the user's role.
type ListWorkspacesUseCase struct {
	Repo repository.IdentityRepository
}

func NewListWorkspacesUseCase(repo repository.IdentityRepository) *ListWorkspacesUseCase {
	return &ListWorkspacesUseCase{Repo: repo}
}

func (uc *ListWorkspacesUseCase) Execute(ctx context.Context, userID string) ([]identity.WorkspaceAccess, error) {
	out, err := uc.Repo.ListWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return out, nil
}
