package adapter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type PgSeatingRepository struct {
	pool *pgxpool.Pool
}

func NewPgSeatingRepository(pool *pgxpool.Pool) *PgSeatingRepository {
	return &PgSeatingRepository{pool: pool}
}

var _ repository.SeatingRepository = (*PgSeatingRepository)(nil)

const tableColumns = `id::text, event_id::text, name, shape, capacity, x, y, rotation, created_at`

// headcountExpr is the number of seats a guest occupies.
const headcountExpr = `CASE WHEN r.status = 'accepted' AND r.party_size > 0 THEN r.party_size ELSE g.invited_count END`

func scanTable(row pgx.Row) (seating.Table, error) {
	var t seating.Table
	err := row.Scan(&t.ID, &t.EventID, &t.Name, &t.Shape, &t.Capacity, &t.X, &t.Y, &t.Rotation, &t.CreatedAt)
	if database.IsNoRows(err) {
		return seating.Table{}, seating.ErrTableNotFound
	}
	return t, err
}

func (r *PgSeatingRepository) CreateTable(ctx context.Context, t seating.Table) (seating.Table, error) {
	return scanTable(r.pool.QueryRow(ctx, `
		INSERT INTO seating_tables (event_id, name, shape, capacity, x, y, rotation)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING `+tableColumns,
		t.EventID, t.Name, t.Shape, t.Capacity, t.X, t.Y, t.Rotation))
}

func (r *PgSeatingRepository) GetTable(ctx context.Context, eventID, tableID string) (seating.Table, error) {
	return scanTable(r.pool.QueryRow(ctx,
		`SELECT `+tableColumns+` FROM seating_tables WHERE id = $1::uuid AND event_id = $2::uuid`,
		tableID, eventID))
}

func (r *PgSeatingRepository) ListTables(ctx context.Context, eventID string) ([]seating.Table, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tableColumns+` FROM seating_tables WHERE event_id = $1::uuid ORDER BY created_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]seating.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// lockTable takes a row lock on the table and returns it with the headcount
// seated there, not counting exceptGuest.
func lockTable(ctx context.Context, tx pgx.Tx, eventID, tableID, exceptGuest string) (seating.Table, int, error) {
	t, err := scanTable(tx.QueryRow(ctx,
		`SELECT `+tableColumns+` FROM seating_tables WHERE id = $1::uuid AND event_id = $2::uuid FOR UPDATE`,
		tableID, eventID))
	if err != nil {
		return t, 0, err
	}
	var occupied int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(`+headcountExpr+`), 0)::int
		FROM guests g LEFT JOIN rsvps r ON r.guest_id = g.id
		WHERE g.table_id = $1::uuid AND g.id::text <> $2
	`, tableID, exceptGuest).Scan(&occupied)
	return t, occupied, err
}

func (r *PgSeatingRepository) UpdateTable(ctx context.Context, t seating.Table, check repository.FitCheck) (seating.Table, error) {
	var out seating.Table
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		cur, occupied, err := lockTable(ctx, tx, t.EventID, t.ID, "")
		if err != nil {
			return err
		}
		if err := check(cur, occupied); err != nil {
			return err
		}
		out, err = scanTable(tx.QueryRow(ctx, `
			UPDATE seating_tables
			SET name = $3, shape = $4, capacity = $5, x = $6, y = $7, rotation = $8
			WHERE id = $1::uuid AND event_id = $2::uuid
			RETURNING `+tableColumns,
			t.ID, t.EventID, t.Name, t.Shape, t.Capacity, t.X, t.Y, t.Rotation))
		return err
	})
	return out, err
}

func (r *PgSeatingRepository) DeleteTable(ctx context.Context, eventID, tableID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM seating_tables WHERE id = $1::uuid AND event_id = $2::uuid`, tableID, eventID)
	if database.IsNoRows(err) {
		return seating.ErrTableNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return seating.ErrTableNotFound
	}
	return nil
}

func (r *PgSeatingRepository) SeatedGuests(ctx context.Context, eventID string) ([]seating.SeatedGuest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT g.id::text, g.name, g.table_id::text, `+headcountExpr+`
		FROM guests g LEFT JOIN rsvps r ON r.guest_id = g.id
		WHERE g.event_id = $1::uuid AND g.table_id IS NOT NULL
		ORDER BY g.table_id, g.name, g.id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]seating.SeatedGuest, 0)
	for rows.Next() {
		var s seating.SeatedGuest
		if err := rows.Scan(&s.GuestID, &s.Name, &s.TableID, &s.Headcount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// lockGuest locks the guest and their RSVP and returns the seats they need.
func lockGuest(ctx context.Context, tx pgx.Tx, eventID, guestID string) (int, error) {
	var invited int
	err := tx.QueryRow(ctx,
		`SELECT invited_count FROM guests WHERE id = $1::uuid AND event_id = $2::uuid FOR UPDATE`,
		guestID, eventID).Scan(&invited)
	if database.IsNoRows(err) {
		return 0, seating.ErrGuestNotFound
	}
	if err != nil {
		return 0, err
	}
	var status string
	var partySize int
	err = tx.QueryRow(ctx,
		`SELECT status, party_size FROM rsvps WHERE guest_id = $1::uuid FOR SHARE`,
		guestID).Scan(&status, &partySize)
	if database.IsNoRows(err) {
		return invited, nil
	}
	if err != nil {
		return 0, err
	}
	if status == "accepted" && partySize > 0 {
		return partySize, nil
	}
	return invited, nil
}

func (r *PgSeatingRepository) AssignGuest(ctx context.Context, eventID, guestID, tableID string, check repository.SeatCheck) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		t, occupied, err := lockTable(ctx, tx, eventID, tableID, guestID)
		if err != nil {
			return err
		}
		headcount, err := lockGuest(ctx, tx, eventID, guestID)
		if err != nil {
			return err
		}
		if err := check(t, occupied, headcount); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE guests SET table_id = $1::uuid, updated_at = now()
			WHERE id = $2::uuid AND event_id = $3::uuid
		`, tableID, guestID, eventID)
		if database.IsNoRows(err) {
			return seating.ErrGuestNotFound
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return seating.ErrGuestNotFound
		}
		return nil
	})
}

func (r *PgSeatingRepository) UnassignGuest(ctx context.Context, eventID, guestID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE guests SET table_id = NULL, updated_at = now()
		WHERE id = $1::uuid AND event_id = $2::uuid
	`, guestID, eventID)
	if database.IsNoRows(err) {
		return seating.ErrGuestNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return seating.ErrGuestNotFound
	}
	return nil
}
