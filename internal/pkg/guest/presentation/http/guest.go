package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	"go-wedding/internal/infrastructure/realtime"
	"go-wedding/internal/pkg/guest/presentation/controller"
	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
)

// RegisterPublicRoutes mounts the invite-link endpoints used by guests.
func RegisterPublicRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, router *realtime.Router) {
	// GET /api/v1/invitations/:token -> invitation page data
	g.GET("/invitations/:token", controller.NewGetInvitationController(pool).Handle())
	// POST /api/v1/invitations/:token/rsvp -> guest answers
	g.POST("/invitations/:token/rsvp", controller.NewSubmitRSVPController(pool, cache, router).Handle())
}

// RegisterRoutes mounts guest-list endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, router *realtime.Router, guard *middleware.Guard) {
	viewer := guard.RequireEventRole(identity.RoleViewer)
	editor := guard.RequireEventRole(identity.RoleEditor)

	ev := g.Group("/events/:eventId")
	ev.GET("/guests", viewer, controller.NewListGuestsController(pool).Handle())
	ev.POST("/guests", editor, controller.NewAddGuestController(pool, cache).Handle())
	ev.POST("/guests/import", editor, controller.NewImportGuestsController(pool, cache).Handle())
	ev.PATCH("/guests/:guestId", editor, controller.NewUpdateGuestController(pool, cache).Handle())
	ev.DELETE("/guests/:guestId", editor, controller.NewRemoveGuestController(pool, cache).Handle())
	ev.PUT("/guests/:guestId/rsvp", editor, controller.NewSetRSVPController(pool, cache, router).Handle())
	ev.GET("/rsvp/stats", viewer, controller.NewRSVPStatsController(pool, cache).Handle())

	// GET /api/v1/events/:eventId/live -> websocket feed of RSVP updates
	ev.GET("/live", viewer, controller.NewLiveController(pool, cache, router).Handle())
}
