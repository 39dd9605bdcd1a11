package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/pkg/event/presentation/controller"
	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
)

// RegisterRoutes registers event endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, guard *middleware.Guard) {
	ws := g.Group("/workspaces/:workspaceId/events")
	ws.GET("", guard.RequireWorkspaceRole(identity.RoleViewer), controller.NewListEventsController(pool).Handle())
	ws.POST("", guard.RequireWorkspaceRole(identity.RoleEditor), controller.NewCreateEventController(pool).Handle())

	ev := g.Group("/events/:eventId")
	ev.GET("", guard.RequireEventRole(identity.RoleViewer), controller.NewGetEventController(pool).Handle())
	ev.PATCH("", guard.RequireEventRole(identity.RoleEditor), controller.NewUpdateEventController(pool).Handle())
}
