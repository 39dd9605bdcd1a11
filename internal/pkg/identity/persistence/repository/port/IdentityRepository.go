package repository

import (
	"context"

	identity "go-wedding/internal/pkg/identity/application/domain"
)

// IdentityRepository defines persistence operations for users, workspaces and memberships.
// Lookups that find nothing return the matching identity.Err*NotFound / ErrNotMember.
type IdentityRepository interface {
	// CreateUserWithWorkspace inserts the user, a workspace it owns and the owner
	// membership atomically. A duplicate email returns identity.ErrEmailTaken.
	CreateUserWithWorkspace(ctx context.Context, u identity.User, workspaceName string) (identity.User, identity.Workspace, error)
	FindUserByEmail(ctx context.Context, email string) (identity.User, error)
	FindUserByID(ctx context.Context, id string) (identity.User, error)

	// CreateWorkspace inserts the workspace and the owner membership atomically.
	CreateWorkspace(ctx context.Context, w identity.Workspace) (identity.Workspace, error)
	ListWorkspacesForUser(ctx context.Context, userID string) ([]identity.WorkspaceAccess, error)

	GetMembership(ctx context.Context, workspaceID, userID string) (identity.Membership, error)
	UpsertMembership(ctx context.Context, m identity.Membership) error
	ListMembers(ctx context.Context, workspaceID string) ([]identity.Member, error)
}
