package adapter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
)

type PgIdentityRepository struct {
	pool *pgxpool.Pool
}

func NewPgIdentityRepository(pool *pgxpool.Pool) *PgIdentityRepository {
	return &PgIdentityRepository{pool: pool}
}

var _ repository.IdentityRepository = (*PgIdentityRepository)(nil)

func (r *PgIdentityRepository) CreateUserWithWorkspace(ctx context.Context, u identity.User, workspaceName string) (identity.User, identity.Workspace, error) {
	var ws identity.Workspace
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, name, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id::text
		`, u.Email, u.Name, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return identity.ErrEmailTaken
			}
			return err
		}
		ws = identity.Workspace{Name: workspaceName, OwnerID: u.ID, CreatedAt: u.CreatedAt}
		return insertWorkspace(ctx, tx, &ws)
	})
	if err != nil {
		return identity.User{}, identity.Workspace{}, err
	}
	return u, ws, nil
}

func (r *PgIdentityRepository) FindUserByEmail(ctx context.Context, email string) (identity.User, error) {
	return r.findUser(ctx, "email = $1", email)
}

func (r *PgIdentityRepository) FindUserByID(ctx context.Context, id string) (identity.User, error) {
	return r.findUser(ctx, "id = $1::uuid", id)
}

func (r *PgIdentityRepository) findUser(ctx context.Context, where string, arg string) (identity.User, error) {
	var u identity.User
	err := r.pool.QueryRow(ctx,
		"SELECT id::text, email, name, password_hash, created_at FROM users WHERE "+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if database.IsNoRows(err) {
		return identity.User{}, identity.ErrUserNotFound
	}
	return u, err
}

func (r *PgIdentityRepository) CreateWorkspace(ctx context.Context, w identity.Workspace) (identity.Workspace, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return insertWorkspace(ctx, tx, &w)
	})
	return w, err
}

func insertWorkspace(ctx context.Context, tx pgx.Tx, w *identity.Workspace) error {
	if err := tx.QueryRow(ctx, `
		INSERT INTO workspaces (name, owner_id, created_at)
		VALUES ($1, $2::uuid, $3)
		RETURNING id::text
	`, w.Name, w.OwnerID, w.CreatedAt).Scan(&w.ID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO memberships (workspace_id, user_id, role, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
	`, w.ID, w.OwnerID, identity.RoleOwner, w.CreatedAt)
	return err
}

func (r *PgIdentityRepository) ListWorkspacesForUser(ctx context.Context, userID string) ([]identity.WorkspaceAccess, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id::text, w.name, w.owner_id::text, w.created_at, m.role
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.id
		WHERE m.user_id = $1::uuid
		ORDER BY w.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []identity.WorkspaceAccess
	for rows.Next() {
		var wa identity.WorkspaceAccess
		if err := rows.Scan(&wa.ID, &wa.Name, &wa.OwnerID, &wa.CreatedAt, &wa.Role); err != nil {
			return nil, err
		}
		out = append(out, wa)
	}
	return out, rows.Err()
}

func (r *PgIdentityRepository) GetMembership(ctx context.Context, workspaceID, userID string) (identity.Membership, error) {
	m := identity.Membership{WorkspaceID: workspaceID, UserID: userID}
	err := r.pool.QueryRow(ctx, `
		SELECT role, created_at FROM memberships
		WHERE workspace_id = $1::uuid AND user_id = $2::uuid
	`, workspaceID, userID).Scan(&m.Role, &m.CreatedAt)
	if database.IsNoRows(err) {
		return identity.Membership{}, identity.ErrNotMember
	}
	return m, err
}

func (r *PgIdentityRepository) UpsertMembership(ctx context.Context, m identity.Membership) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO memberships (workspace_id, user_id, role, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		ON CONFLICT (workspace_id, user_id)
		DO UPDATE SET role = EXCLUDED.role
		WHERE memberships.role <> 'owner'
	`, m.WorkspaceID, m.UserID, m.Role, m.CreatedAt)
	return err
}

func (r *PgIdentityRepository) ListMembers(ctx context.Context, workspaceID string) ([]identity.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.email, u.name, m.role, m.created_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1::uuid
		ORDER BY m.created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []identity.Member
	for rows.Next() {
		var m identity.Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.Name, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
