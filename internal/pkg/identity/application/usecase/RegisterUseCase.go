package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/application/session"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by sign-up and login.
type AuthResult struct {
	User      identity.User
	Workspace *identity.Workspace
	Token     string
	ExpiresAt time.Time
}

// RegisterUseCase creates an account together with its default workspace.
type RegisterUseCase struct {
	Repo       repository.IdentityRepository
	Tokens     *session.Issuer
	BcryptCost int
	Now        func() time.Time
}

func NewRegisterUseCase(repo repository.IdentityRepository, tokens *session.Issuer) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo, Tokens: tokens, BcryptCost: bcrypt.DefaultCost, Now: time.Now}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := identity.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := identity.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    uc.Now().UTC(),
	}
	u, ws, err := uc.Repo.CreateUserWithWorkspace(ctx, u, identity.DefaultWorkspaceName(name))
	if err != nil {
		return nil, apperr.FromRepository(err)
	}

	tok, exp, err := uc.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Workspace: &ws, Token: tok, ExpiresAt: exp}, nil
}
