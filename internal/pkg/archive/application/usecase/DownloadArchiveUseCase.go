package usecase

import (
	"context"
	"errors"

	"go-wedding/internal/infrastructure/storage/port"
	archive "go-wedding/internal/pkg/archive/application/domain"
	repository "go-wedding/internal/pkg/archive/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type DownloadArchiveInput struct {
	WorkspaceID string
	ArchiveID   string
}

// DownloadArchiveUseCase fetches a stored snapshot.
type DownloadArchiveUseCase struct {
	Repo  repository.ArchiveRepository
	Store port.ObjectStore
}

func NewDownloadArchiveUseCase(repo repository.ArchiveRepository, store port.ObjectStore) *DownloadArchiveUseCase {
	return &DownloadArchiveUseCase{Repo: repo, Store: store}
}

func (uc *DownloadArchiveUseCase) Execute(ctx context.Context, in DownloadArchiveInput) (*archive.Archive, []byte, error) {
	a, err := uc.Repo.Get(ctx, in.WorkspaceID, in.ArchiveID)
	if err != nil {
		return nil, nil, apperr.FromRepository(err)
	}
	body, err := uc.Store.Get(ctx, a.ObjectKey)
	if errors.Is(err, port.ErrNotFound) {
		return nil, nil, apperr.New(apperr.ErrNotFound, "archive: snapshot object missing")
	}
	if err != nil {
		return nil, nil, apperr.New(apperr.ErrUnavailable, "archive: snapshot download failed")
	}
	return &a, body, nil
}
