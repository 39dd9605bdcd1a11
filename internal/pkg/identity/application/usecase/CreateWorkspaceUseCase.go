package usecase

import (
	"context"
	"strings"
	"time"

	identity "go-wedding/internal/pkg/identity/application/domain"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type CreateWorkspaceInput struct {
	UserID string
	Name   string
}

// CreateWorkspaceUseCase opens a new tenant owned by the caller.
type CreateWorkspaceUseCase struct {
	Repo repository.IdentityRepository
}

func NewCreateWorkspaceUseCase(repo repository.IdentityRepository) *CreateWorkspaceUseCase {
	return &CreateWorkspaceUseCase{Repo: repo}
}

func (uc *CreateWorkspaceUseCase) Execute(ctx context.Context, in CreateWorkspaceInput) (*identity.Workspace, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if len(name) > 120 {
		return nil, apperr.Validation("name must be at most 120 characters")
	}
	ws, err := uc.Repo.CreateWorkspace(ctx, identity.Workspace{
		Name:      name,
		OwnerID:   in.UserID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &ws, nil
}
