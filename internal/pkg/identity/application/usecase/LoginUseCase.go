package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/application/session"
	repository "go-wedding/internal/pkg/identity/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase exchanges credentials for an access token. Unknown emails and
// wrong passwords produce the same error.
type LoginUseCase struct {
	Repo   repository.IdentityRepository
	Tokens *session.Issuer
}

func NewLoginUseCase(repo repository.IdentityRepository, tokens *session.Issuer) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email, err := identity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, identity.ErrInvalidCredentials
	}
	u, err := uc.Repo.FindUserByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		return nil, identity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, identity.ErrInvalidCredentials
	}

	tok, exp, err := uc.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: tok, ExpiresAt: exp}, nil
}
