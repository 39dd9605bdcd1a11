package repository

import (
	"context"

	supplier "go-wedding/internal/pkg/supplier/application/domain"
)

// SupplierRepository defines persistence operations for an event's suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error)
	Get(ctx context.Context, eventID, supplierID string) (supplier.Supplier, error)
	List(ctx context.Context, eventID string) ([]supplier.Supplier, error)
	Update(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error)
	Delete(ctx context.Context, eventID, supplierID string) error
}
