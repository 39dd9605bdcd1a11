package usecase

import (
	"context"

	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type ListMembersUseCase struct {
	Repo repository.IdentityRepository
}

func NewListMembersUseCase(repo repository.IdentityRepository) *ListMembersUseCase {
	return &ListMembersUseCase{Repo: repo}
}

func (uc *ListMembersUseCase) Execute(ctx context.Context, workspaceID string) ([]identity.Member, error) {
	out, err := uc.Repo.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return out, nil
}
