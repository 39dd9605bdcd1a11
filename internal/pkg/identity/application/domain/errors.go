package identity

import "go-wedding/internal/pkg/platform/apperr"

// Domain-level errors for identity behaviors
var (
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "identity: user not found")
	ErrWorkspaceNotFound  = apperr.New(apperr.ErrNotFound, "identity: workspace not found")
	ErrEmailTaken         = apperr.New(apperr.ErrConflict, "identity: email already registered")
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "identity: invalid email or password")
	ErrNotMember          = apperr.New(apperr.ErrForbidden, "identity: not a member of this workspace")
	ErrInsufficientRole   = apperr.New(apperr.ErrForbidden, "identity: role does not allow this action")
	ErrSecondOwner        = apperr.Validation("identity: a workspace has exactly one owner")
)
