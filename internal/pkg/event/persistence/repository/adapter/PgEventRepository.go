package adapter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	event "go-wedding/internal/pkg/event/application/domain"
	repository "go-wedding/internal/pkg/event/persistence/repository/port"
)

type PgEventRepository struct {
	pool *pgxpool.Pool
}

func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

var _ repository.EventRepository = (*PgEventRepository)(nil)

const eventColumns = `id::text, workspace_id::text, title, event_date, venue, address, budget_cents,
	notes, invitation_image_url, invitation_image_key, created_at, updated_at`

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(&e.ID, &e.WorkspaceID, &e.Title, &e.EventDate, &e.Venue, &e.Address, &e.BudgetCents,
		&e.Notes, &e.InvitationImageURL, &e.InvitationImageKey, &e.CreatedAt, &e.UpdatedAt)
	return e, notFound(err)
}

func notFound(err error) error {
	if database.IsNoRows(err) {
		return event.ErrEventNotFound
	}
	return err
}

func (r *PgEventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		INSERT INTO events (workspace_id, title, event_date, venue, address, budget_cents, notes)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns,
		e.WorkspaceID, e.Title, e.EventDate, e.Venue, e.Address, e.BudgetCents, e.Notes))
}

func (r *PgEventRepository) Get(ctx context.Context, id string) (event.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1::uuid`, id))
}

func (r *PgEventRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]event.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE workspace_id = $1::uuid
		ORDER BY event_date NULLS LAST, created_at`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]event.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PgEventRepository) Update(ctx context.Context, e event.Event) (event.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events
		SET title = $2, event_date = $3, venue = $4, address = $5, budget_cents = $6, notes = $7, updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+eventColumns,
		e.ID, e.Title, e.EventDate, e.Venue, e.Address, e.BudgetCents, e.Notes))
}

func (r *PgEventRepository) SetInvitationImage(ctx context.Context, id, url, key string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events SET invitation_image_url = $2, invitation_image_key = $3, updated_at = now()
		WHERE id = $1::uuid`, id, url, key)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

func (r *PgEventRepository) WorkspaceOf(ctx context.Context, id string) (string, error) {
	var ws string
	err := r.pool.QueryRow(ctx, `SELECT workspace_id::text FROM events WHERE id = $1::uuid`, id).Scan(&ws)
	return ws, notFound(err)
}
