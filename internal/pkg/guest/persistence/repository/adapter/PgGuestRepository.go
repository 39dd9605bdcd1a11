package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
)

type PgGuestRepository struct {
	pool *pgxpool.Pool
}

func NewPgGuestRepository(pool *pgxpool.Pool) *PgGuestRepository {
	return &PgGuestRepository{pool: pool}
}

var _ repository.GuestRepository = (*PgGuestRepository)(nil)

const guestViewColumns = `g.id::text, g.event_id::text, g.name, g.phone, g.guest_group, g.invited_count,
	g.invite_token, g.table_id::text, g.notes, g.created_at, g.updated_at,
	COALESCE(r.status, 'pending'), COALESCE(r.party_size, 0), COALESCE(r.note, ''), r.responded_at`

const guestViewFrom = ` FROM guests g LEFT JOIN rsvps r ON r.guest_id = g.id `

func scanGuestView(row pgx.Row) (guest.GuestView, error) {
	var v guest.GuestView
	err := row.Scan(&v.ID, &v.EventID, &v.Name, &v.Phone, &v.Group, &v.InvitedCount,
		&v.InviteToken, &v.TableID, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		&v.RSVP.Status, &v.RSVP.PartySize, &v.RSVP.Note, &v.RSVP.RespondedAt)
	if database.IsNoRows(err) {
		return guest.GuestView{}, guest.ErrGuestNotFound
	}
	v.RSVP.GuestID = v.ID
	return v, err
}

func (r *PgGuestRepository) Create(ctx context.Context, guests []guest.Guest) ([]guest.Guest, error) {
	out := make([]guest.Guest, 0, len(guests))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, g := range guests {
			err := tx.QueryRow(ctx, `
				INSERT INTO guests (event_id, name, phone, guest_group, invited_count, invite_token, notes, created_at, updated_at)
				VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $8)
				RETURNING id::text
			`, g.EventID, g.Name, g.Phone, g.Group, g.InvitedCount, g.InviteToken, g.Notes, g.CreatedAt).Scan(&g.ID)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `INSERT INTO rsvps (guest_id) VALUES ($1::uuid)`, g.ID); err != nil {
				return err
			}
			out = append(out, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PgGuestRepository) Get(ctx context.Context, eventID, guestID string) (guest.GuestView, error) {
	return scanGuestView(r.pool.QueryRow(ctx,
		`SELECT `+guestViewColumns+guestViewFrom+`WHERE g.id = $1::uuid AND g.event_id = $2::uuid`,
		guestID, eventID))
}

func (r *PgGuestRepository) List(ctx context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+guestViewColumns+guestViewFrom+`
		WHERE g.event_id = $1::uuid AND ($2::text IS NULL OR COALESCE(r.status, 'pending') = $2)
		ORDER BY g.name, g.id`, eventID, status)
	if err != nil {
		if database.IsNoRows(err) {
			return []guest.GuestView{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	out := make([]guest.GuestView, 0)
	for rows.Next() {
		v, err := scanGuestView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PgGuestRepository) Update(ctx context.Context, g guest.Guest) (guest.Guest, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE guests
		SET name = $3, phone = $4, guest_group = $5, invited_count = $6, notes = $7, updated_at = now()
		WHERE id = $1::uuid AND event_id = $2::uuid
		RETURNING updated_at
	`, g.ID, g.EventID, g.Name, g.Phone, g.Group, g.InvitedCount, g.Notes).Scan(&g.UpdatedAt)
	if database.IsNoRows(err) {
		return guest.Guest{}, guest.ErrGuestNotFound
	}
	return g, err
}

func (r *PgGuestRepository) Delete(ctx context.Context, eventID, guestID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM guests WHERE id = $1::uuid AND event_id = $2::uuid`, guestID, eventID)
	if database.IsNoRows(err) {
		return guest.ErrGuestNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return guest.ErrGuestNotFound
	}
	return nil
}

func (r *PgGuestRepository) FindByToken(ctx context.Context, token string) (guest.GuestView, error) {
	v, err := scanGuestView(r.pool.QueryRow(ctx,
		`SELECT `+guestViewColumns+guestViewFrom+`WHERE g.invite_token = $1`, token))
	if errors.Is(err, guest.ErrGuestNotFound) {
		return v, guest.ErrInvitationNotFound
	}
	return v, err
}

func (r *PgGuestRepository) SaveRSVP(ctx context.Context, rsvp guest.RSVP) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rsvps (guest_id, status, party_size, note, responded_at)
		VALUES ($1::uuid, $2, $3, $4, $5)
		ON CONFLICT (guest_id) DO UPDATE
		SET status = EXCLUDED.status, party_size = EXCLUDED.party_size,
		    note = EXCLUDED.note, responded_at = EXCLUDED.responded_at
	`, rsvp.GuestID, rsvp.Status, rsvp.PartySize, rsvp.Note, rsvp.RespondedAt)
	if database.IsForeignKeyViolation(err) {
		return guest.ErrGuestNotFound
	}
	return err
}
