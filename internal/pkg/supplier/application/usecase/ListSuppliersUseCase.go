package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

type ListSuppliersUseCase struct {
	Repo repository.SupplierRepository
}

func NewListSuppliersUseCase(repo repository.SupplierRepository) *ListSuppliersUseCase {
	return &ListSuppliersUseCase{Repo: repo}
}

func (uc *ListSuppliersUseCase) Execute(ctx context.Context, eventID string) ([]supplier.Supplier, error) {
	out, err := uc.Repo.List(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return out, nil
}
