package usecase

import (
	"context"

	archive "go-wedding/internal/pkg/archive/application/domain"
	repository "go-wedding/internal/pkg/archive/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type ListArchivesUseCase struct {
	Repo repository.ArchiveRepository
}

func NewListArchivesUseCase(repo repository.ArchiveRepository) *ListArchivesUseCase {
	return &ListArchivesUseCase{Repo: repo}
}

func (uc *ListArchivesUseCase) Execute(ctx context.Context, workspaceID string) ([]archive.Archive, error) {
	list, err := uc.Repo.List(ctx, workspaceID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return list, nil
}
