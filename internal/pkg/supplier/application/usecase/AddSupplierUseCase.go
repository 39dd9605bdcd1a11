package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

type AddSupplierUseCase struct {
	Repo repository.SupplierRepository
}

func NewAddSupplierUseCase(repo repository.SupplierRepository) *AddSupplierUseCase {
	return &AddSupplierUseCase{Repo: repo}
}

func (uc *AddSupplierUseCase) Execute(ctx context.Context, s supplier.Supplier) (*supplier.Supplier, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.Repo.Create(ctx, s)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &created, nil
}
