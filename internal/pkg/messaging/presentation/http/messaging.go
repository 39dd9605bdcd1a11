package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	"go-wedding/internal/infrastructure/realtime"
	identity "go-wedding/internal/pkg/identity/application/domain"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/messaging/application/usecase"
	"go-wedding/internal/pkg/messaging/presentation/controller"
)

// Deps are the collaborators the messaging endpoints need beyond the pool.
type Deps struct {
	Pool          *pgxpool.Pool
	Cache         cacheport.Cache
	Router        *realtime.Router
	Queue         usecase.Scheduler
	PublicBaseURL string
	Webhooks      controller.WebhookConfig
}

// RegisterRoutes mounts campaign endpoints on an authenticated group.
func RegisterRoutes(g *gin.RouterGroup, d Deps, guard *middleware.Guard) {
	viewer := guard.RequireEventRole(identity.RoleViewer)
	editor := guard.RequireEventRole(identity.RoleEditor)

	jobs := g.Group("/events/:eventId/messages/jobs")
	jobs.GET("", viewer, controller.NewListJobsController(d.Pool).Handle())
	jobs.POST("", editor, controller.NewCreateJobController(d.Pool, d.Queue, d.PublicBaseURL).Handle())
	jobs.GET("/:jobId", viewer, controller.NewGetJobController(d.Pool).Handle())
	jobs.POST("/:jobId/cancel", editor, controller.NewCancelJobController(d.Pool).Handle())

	g.GET("/events/:eventId/costs", viewer, controller.NewCostSummaryController(d.Pool).Handle())
}

// RegisterWebhooks mounts the unauthenticated provider callbacks.
func RegisterWebhooks(g gin.IRoutes, d Deps) {
	g.POST("/webhooks/twilio/status", controller.NewTwilioStatusController(d.Pool, d.Webhooks).Handle())
	g.GET("/webhooks/whatsapp", controller.NewWhatsAppVerifyController(d.Webhooks).Handle())
	g.POST("/webhooks/whatsapp", controller.NewWhatsAppWebhookController(d.Pool, d.Cache, d.Router, d.Webhooks).Handle())
}
