package usecase

import (
	"context"

	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type AuthorizeInput struct {
	UserID      string
	WorkspaceID string
	MinRole     identity.Role
}

// AuthorizeUseCase checks that a user holds at least MinRole in a workspace
// and returns the role actually held.
type AuthorizeUseCase struct {
	Repo repository.IdentityRepository
}

func NewAuthorizeUseCase(repo repository.IdentityRepository) *AuthorizeUseCase {
	return &AuthorizeUseCase{Repo: repo}
}

func (uc *AuthorizeUseCase) Execute(ctx context.Context, in AuthorizeInput) (identity.Role, error) {
	if in.UserID == "" || in.WorkspaceID == "" {
		return "", identity.ErrNotMember
	}
	m, err := uc.Repo.GetMembership(ctx, in.WorkspaceID, in.UserID)
	if err != nil {
		return "", apperr.FromRepository(err)
	}
	if !m.Role.Allows(in.MinRole) {
		return "", identity.ErrInsufficientRole
	}
	return m.Role, nil
}
