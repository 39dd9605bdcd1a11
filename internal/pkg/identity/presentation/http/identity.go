package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/application/session"
	"go-wedding/internal/pkg/identity/presentation/controller"
	"go-wedding/internal/pkg/identity/presentation/middleware"
)

// RegisterPublicRoutes mounts the unauthenticated auth endpoints.
func RegisterPublicRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, tokens *session.Issuer) {
	// POST /api/v1/auth/register -> create account + default workspace
	g.POST("/auth/register", controller.NewRegisterController(pool, tokens).Handle())
	// POST /api/v1/auth/login -> exchange credentials for a token
	g.POST("/auth/login", controller.NewLoginController(pool, tokens).Handle())
}

// RegisterRoutes mounts workspace endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, guard *middleware.Guard) {
	g.GET("/workspaces", controller.NewListWorkspacesController(pool).Handle())
	g.POST("/workspaces", controller.NewCreateWorkspaceController(pool).Handle())

	ws := g.Group("/workspaces/:workspaceId")
	ws.GET("/members", guard.RequireWorkspaceRole(identity.RoleViewer), controller.NewListMembersController(pool).Handle())
	ws.POST("/members", guard.RequireWorkspaceRole(identity.RoleOwner), controller.NewAddMemberController(pool).Handle())
}
