package adapter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

type PgSupplierRepository struct {
	pool *pgxpool.Pool
}

func NewPgSupplierRepository(pool *pgxpool.Pool) *PgSupplierRepository {
	return &PgSupplierRepository{pool: pool}
}

var _ repository.SupplierRepository = (*PgSupplierRepository)(nil)

const supplierColumns = `id::text, event_id::text, name, category, phone, email, agreed_cents, paid_cents, notes, created_at, updated_at`

func scanSupplier(row pgx.Row) (supplier.Supplier, error) {
	var s supplier.Supplier
	err := row.Scan(&s.ID, &s.EventID, &s.Name, &s.Category, &s.Phone, &s.Email,
		&s.AgreedCents, &s.PaidCents, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if database.IsNoRows(err) {
		return supplier.Supplier{}, supplier.ErrSupplierNotFound
	}
	return s, err
}

func (r *PgSupplierRepository) Create(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (event_id, name, category, phone, email, agreed_cents, paid_cents, notes)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+supplierColumns,
		s.EventID, s.Name, s.Category, s.Phone, s.Email, s.AgreedCents, s.PaidCents, s.Notes))
}

func (r *PgSupplierRepository) Get(ctx context.Context, eventID, supplierID string) (supplier.Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = $1::uuid AND event_id = $2::uuid`,
		supplierID, eventID))
}

func (r *PgSupplierRepository) List(ctx context.Context, eventID string) ([]supplier.Supplier, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE event_id = $1::uuid ORDER BY category, name, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]supplier.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PgSupplierRepository) Update(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	return scanSupplier(r.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $3, category = $4, phone = $5, email = $6, agreed_cents = $7, paid_cents = $8, notes = $9, updated_at = now()
		WHERE id = $1::uuid AND event_id = $2::uuid
		RETURNING `+supplierColumns,
		s.ID, s.EventID, s.Name, s.Category, s.Phone, s.Email, s.AgreedCents, s.PaidCents, s.Notes))
}

func (r *PgSupplierRepository) Delete(ctx context.Context, eventID, supplierID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1::uuid AND event_id = $2::uuid`, supplierID, eventID)
	if database.IsNoRows(err) {
		return supplier.ErrSupplierNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return supplier.ErrSupplierNotFound
	}
	return nil
}
