package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

type UpdateSupplierInput struct {
	EventID    string
	SupplierID string
	Patch      supplier.Patch
}

type UpdateSupplierUseCase struct {
	Repo repository.SupplierRepository
}

func NewUpdateSupplierUseCase(repo repository.SupplierRepository) *UpdateSupplierUseCase {
	return &UpdateSupplierUseCase{Repo: repo}
}

func (uc *UpdateSupplierUseCase) Execute(ctx context.Context, in UpdateSupplierInput) (*supplier.Supplier, error) {
	cur, err := uc.Repo.Get(ctx, in.EventID, in.SupplierID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	next, err := in.Patch.Apply(cur)
	if err != nil {
		return nil, err
	}
	updated, err := uc.Repo.Update(ctx, next)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &updated, nil
}
