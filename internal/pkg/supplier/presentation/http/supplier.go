package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/supplier/presentation/controller"
)

// RegisterRoutes mounts supplier and budget endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, guard *middleware.Guard) {
	viewer := guard.RequireEventRole(identity.RoleViewer)
	editor := guard.RequireEventRole(identity.RoleEditor)

	ev := g.Group("/events/:eventId")
	ev.GET("/suppliers", viewer, controller.NewListSuppliersController(pool).Handle())
	ev.POST("/suppliers", editor, controller.NewAddSupplierController(pool).Handle())
	ev.PATCH("/suppliers/:supplierId", editor, controller.NewUpdateSupplierController(pool).Handle())
	ev.DELETE("/suppliers/:supplierId", editor, controller.NewRemoveSupplierController(pool).Handle())
	ev.GET("/budget", viewer, controller.NewBudgetController(pool).Handle())
}
