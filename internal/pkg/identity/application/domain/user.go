package identity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go-wedding/internal/pkg/platform/apperr"
)

// User is an account that can sign in and belong to workspaces.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Workspace is the tenant boundary: every event belongs to exactly one.
type Workspace struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership grants a user a role inside a workspace.
// Primary key: (WorkspaceID, UserID)
type Membership struct {
	WorkspaceID string    `db:"workspace_id"`
	UserID      string    `db:"user_id"`
	Role        Role      `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
}

// WorkspaceAccess is a workspace as seen by one of its members.
type WorkspaceAccess struct {
	Workspace
	Role Role
}

// Member is a membership joined with the user's public fields.
type Member struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}

const minPasswordLength = 8

// NormalizeEmail lowercases and trims an address and checks its basic shape.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") || strings.ContainsAny(email, " \t") {
		return "", apperr.Validation("email is invalid")
	}
	return email, nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLength {
		return apperr.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if len(pw) > 72 {
		// bcrypt ignores everything past 72 bytes.
		return apperr.Validation("password must be at most 72 bytes")
	}
	return nil
}

// DefaultWorkspaceName names the workspace created at sign-up.
func DefaultWorkspaceName(userName string) string {
	name := strings.TrimSpace(userName)
	if name == "" {
		return "My workspace"
	}
	return name + "'s workspace"
}
