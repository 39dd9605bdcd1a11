package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type DeleteTableInput struct {
	EventID string
	TableID string
}

// DeleteTableUseCase removes a table; anyone seated there becomes unseated.
type DeleteTableUseCase struct {
	Repo repository.SeatingRepository
}

func NewDeleteTableUseCase(repo repository.SeatingRepository) *DeleteTableUseCase {
	return &DeleteTableUseCase{Repo: repo}
}

func (uc *DeleteTableUseCase) Execute(ctx context.Context, in DeleteTableInput) error {
	if err := uc.Repo.DeleteTable(ctx, in.EventID, in.TableID); err != nil {
		return apperr.FromRepository(err)
	}
	return nil
}
