package adapter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	archive "go-wedding/internal/pkg/archive/application/domain"
	repository "go-wedding/internal/pkg/archive/persistence/repository/port"
	event "go-wedding/internal/pkg/event/application/domain"
)

type PgArchiveRepository struct {
	pool *pgxpool.Pool
}

func NewPgArchiveRepository(pool *pgxpool.Pool) *PgArchiveRepository {
	return &PgArchiveRepository{pool: pool}
}

var _ repository.ArchiveRepository = (*PgArchiveRepository)(nil)

const archiveColumns = `id::text, workspace_id::text, event_id::text, event_title, object_key, size_bytes, archived_at`

func (r *PgArchiveRepository) Commit(ctx context.Context, a archive.Archive) (archive.Archive, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1::uuid AND workspace_id = $2::uuid`, a.EventID, a.WorkspaceID)
		if err != nil {
			if database.IsNoRows(err) {
				return event.ErrEventNotFound
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return event.ErrEventNotFound
		}
		return tx.QueryRow(ctx, `
			INSERT INTO event_archives (workspace_id, event_id, event_title, object_key, size_bytes, archived_at)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6)
			RETURNING id::text
		`, a.WorkspaceID, a.EventID, a.EventTitle, a.ObjectKey, a.SizeBytes, a.ArchivedAt).Scan(&a.ID)
	})
	if err != nil {
		return archive.Archive{}, err
	}
	return a, nil
}

func (r *PgArchiveRepository) List(ctx context.Context, workspaceID string) ([]archive.Archive, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+archiveColumns+`
		FROM event_archives
		WHERE workspace_id = $1::uuid
		ORDER BY archived_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[archive.Archive])
}

func (r *PgArchiveRepository) Get(ctx context.Context, workspaceID, archiveID string) (archive.Archive, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+archiveColumns+`
		FROM event_archives
		WHERE workspace_id = $1::uuid AND id = $2::uuid
	`, workspaceID, archiveID)
	if err != nil {
		return archive.Archive{}, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[archive.Archive])
	if database.IsNoRows(err) {
		return archive.Archive{}, archive.ErrArchiveNotFound
	}
	return a, err
}
