package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	imagegen "go-wedding/internal/infrastructure/imagegen/port"
	storage "go-wedding/internal/infrastructure/storage/port"
	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/invitation/presentation/controller"
)

// RegisterRoutes mounts invitation image generation on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, editor imagegen.Editor, store storage.ObjectStore, costMicros int64, guard *middleware.Guard) {
	g.POST("/events/:eventId/invitation",
		guard.RequireEventRole(identity.RoleEditor),
		controller.NewGenerateInvitationController(pool, editor, store, costMicros).Handle(),
	)
}
