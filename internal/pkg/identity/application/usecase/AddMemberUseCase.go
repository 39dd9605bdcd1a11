package usecase

import (
	"context"
	"time"

	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type AddMemberInput struct {
	ActorID     string
	WorkspaceID string
	Email       string
	Role        string
}

// AddMemberUseCase lets a workspace owner grant another registered user access.
type AddMemberUseCase struct {
	Repo repository.IdentityRepository
}

func NewAddMemberUseCase(repo repository.IdentityRepository) *AddMemberUseCase {
	return &AddMemberUseCase{Repo: repo}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, in AddMemberInput) (*identity.Member, error) {
	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if role == identity.RoleOwner {
		return nil, identity.ErrSecondOwner
	}
	email, err := identity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	actor, err := uc.Repo.GetMembership(ctx, in.WorkspaceID, in.ActorID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	if !actor.Role.Allows(identity.RoleOwner) {
		return nil, identity.ErrInsufficientRole
	}

	u, err := uc.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	if u.ID == in.ActorID {
		return nil, identity.ErrSecondOwner
	}

	m := identity.Membership{
		WorkspaceID: in.WorkspaceID,
		UserID:      u.ID,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.Repo.UpsertMembership(ctx, m); err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &identity.Member{UserID: u.ID, Email: u.Email, Name: u.Name, Role: role, CreatedAt: m.CreatedAt}, nil
}
