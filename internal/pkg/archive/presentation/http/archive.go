package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/storage/port"
	"go-wedding/internal/pkg/archive/application/usecase"
	"go-wedding/internal/pkg/archive/presentation/controller"
	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
)

// RegisterRoutes mounts event deletion and archive browsing. Deleting an event
// always archives it first.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, store port.ObjectStore, rooms usecase.Rooms, guard *middleware.Guard) {
	g.DELETE("/events/:eventId", guard.RequireEventRole(identity.RoleOwner), controller.NewArchiveEventController(pool, store, rooms).Handle())

	ws := g.Group("/workspaces/:workspaceId/archives")
	ws.GET("", guard.RequireWorkspaceRole(identity.RoleViewer), controller.NewListArchivesController(pool).Handle())
	ws.GET("/:archiveId", guard.RequireWorkspaceRole(identity.RoleViewer), controller.NewDownloadArchiveController(pool, store).Handle())
}
