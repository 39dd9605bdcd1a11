package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

type RemoveSupplierInput struct {
	EventID    string
	SupplierID string
}

type RemoveSupplierUseCase struct {
	Repo repository.SupplierRepository
}

func NewRemoveSupplierUseCase(repo repository.SupplierRepository) *RemoveSupplierUseCase {
	return &RemoveSupplierUseCase{Repo: repo}
}

func (uc *RemoveSupplierUseCase) Execute(ctx context.Context, in RemoveSupplierInput) error {
	return apperr.FromRepository(uc.Repo.Delete(ctx, in.EventID, in.SupplierID))
}
