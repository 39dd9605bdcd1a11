package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/seating/presentation/controller"
)

// RegisterRoutes mounts the seating-chart endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, guard *middleware.Guard) {
	viewer := guard.RequireEventRole(identity.RoleViewer)
	editor := guard.RequireEventRole(identity.RoleEditor)

	ev := g.Group("/events/:eventId")
	ev.GET("/tables", viewer, controller.NewListTablesController(pool).Handle())
	ev.POST("/tables", editor, controller.NewCreateTableController(pool).Handle())
	ev.GET("/tables/:tableId", viewer, controller.NewTableSeatsController(pool).Handle())
	ev.PATCH("/tables/:tableId", editor, controller.NewUpdateTableController(pool).Handle())
	ev.DELETE("/tables/:tableId", editor, controller.NewDeleteTableController(pool).Handle())
	ev.PUT("/tables/:tableId/guests/:guestId", editor, controller.NewAssignGuestController(pool).Handle())
	ev.DELETE("/seating/guests/:guestId", editor, controller.NewUnassignGuestController(pool).Handle())
}
