// Package middleware holds the gin middleware that authenticates callers and
// enforces workspace roles on tenant-scoped routes.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/application/session"
	"go-wedding/internal/pkg/identity/application/usecase"
	"go-wedding/internal/pkg/platform/apperr"
)

const (
	userIDKey      = "auth.user_id"
	userEmailKey   = "auth.email"
	workspaceIDKey = "auth.workspace_id"
	roleKey        = "auth.role"
)

// EventWorkspaceResolver finds the workspace that owns an event.
type EventWorkspaceResolver interface {
	WorkspaceOf(ctx context.Context, eventID string) (string, error)
}

// Guard bundles the token issuer and authorization use case shared by the
// route groups.
type Guard struct {
	Tokens    *session.Issuer
	Authorize *usecase.AuthorizeUseCase
	Events    EventWorkspaceResolver
}

// RequireUser authenticates the bearer token. Websocket clients cannot set
// headers, so the access_token query parameter is accepted as well.
func (g *Guard) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("access_token")
		}
		claims, err := g.Tokens.Parse(token)
		if err != nil {
			apperr.Respond(c, session.ErrInvalidToken)
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// RequireWorkspaceRole authorizes the caller against the :workspaceId path parameter.
func (g *Guard) RequireWorkspaceRole(min identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		g.authorize(c, c.Param("workspaceId"), min)
	}
}

// RequireEventRole resolves :eventId to its workspace, then authorizes the caller.
func (g *Guard) RequireEventRole(min identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		wsID, err := g.Events.WorkspaceOf(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			c.Abort()
			return
		}
		g.authorize(c, wsID, min)
	}
}

func (g *Guard) authorize(c *gin.Context, workspaceID string, min identity.Role) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	role, err := g.Authorize.Execute(ctx, usecase.AuthorizeInput{
		UserID:      UserID(c),
		WorkspaceID: workspaceID,
		MinRole:     min,
	})
	if err != nil {
		apperr.Respond(c, err)
		c.Abort()
		return
	}
	c.Set(workspaceIDKey, workspaceID)
	c.Set(roleKey, role)
	c.Next()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the authenticated user id set by RequireUser.
func UserID(c *gin.Context) string { return c.GetString(userIDKey) }

// UserEmail returns the authenticated user's email.
func UserEmail(c *gin.Context) string { return c.GetString(userEmailKey) }

// WorkspaceID returns the workspace resolved by the role middleware.
func WorkspaceID(c *gin.Context) string { return c.GetString(workspaceIDKey) }

// Role returns the caller's role in the resolved workspace.
func Role(c *gin.Context) identity.Role {
	r, _ := c.Get(roleKey)
	role, _ := r.(identity.Role)
	return role
}
