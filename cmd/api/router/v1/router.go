package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	imagegen "go-wedding/internal/infrastructure/imagegen/port"
	"go-wedding/internal/infrastructure/realtime"
	storage "go-wedding/internal/infrastructure/storage/port"
	archiveHTTP "go-wedding/internal/pkg/archive/presentation/http"
	eventHTTP "go-wedding/internal/pkg/event/presentation/http"
	guestHTTP "go-wedding/internal/pkg/guest/presentation/http"
	"go-wedding/internal/pkg/identity/application/session"
	identityHTTP "go-wedding/internal/pkg/identity/presentation/http"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	invitationHTTP "go-wedding/internal/pkg/invitation/presentation/http"
	messagingusecase "go-wedding/internal/pkg/messaging/application/usecase"
	messagingcontroller "go-wedding/internal/pkg/messaging/presentation/controller"
	messagingHTTP "go-wedding/internal/pkg/messaging/presentation/http"
	seatingHTTP "go-wedding/internal/pkg/seating/presentation/http"
	supplierHTTP "go-wedding/internal/pkg/supplier/presentation/http"
)

// Deps carries the shared infrastructure every context's routes draw from.
type Deps struct {
	Pool            *pgxpool.Pool
	Cache           cacheport.Cache
	Realtime        *realtime.Router
	Store           storage.ObjectStore
	Images          imagegen.Editor
	ImageCostMicros int64
	Scheduler       messagingusecase.Scheduler
	Tokens          *session.Issuer
	Guard           *middleware.Guard
	PublicBaseURL   string
	Webhooks        messagingcontroller.WebhookConfig
}

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, d Deps) {
	v1 := r.Group("/api/v1")

	// Unauthenticated: sign up, log in, invite links.
	identityHTTP.RegisterPublicRoutes(v1, d.Pool, d.Tokens)
	guestHTTP.RegisterPublicRoutes(v1, d.Pool, d.Cache, d.Realtime)

	msg := messagingHTTP.Deps{
		Pool:          d.Pool,
		Cache:         d.Cache,
		Router:        d.Realtime,
		Queue:         d.Scheduler,
		PublicBaseURL: d.PublicBaseURL,
		Webhooks:      d.Webhooks,
	}
	// Provider callbacks authenticate with signatures, not tokens.
	messagingHTTP.RegisterWebhooks(r, msg)

	auth := v1.Group("", d.Guard.RequireUser())
	identityHTTP.RegisterRoutes(auth, d.Pool, d.Guard)
	eventHTTP.RegisterRoutes(auth, d.Pool, d.Guard)
	guestHTTP.RegisterRoutes(auth, d.Pool, d.Cache, d.Realtime, d.Guard)
	seatingHTTP.RegisterRoutes(auth, d.Pool, d.Guard)
	supplierHTTP.RegisterRoutes(auth, d.Pool, d.Guard)
	messagingHTTP.RegisterRoutes(auth, msg, d.Guard)
	archiveHTTP.RegisterRoutes(auth, d.Pool, d.Store, d.Realtime, d.Guard)
	invitationHTTP.RegisterRoutes(auth, d.Pool, d.Images, d.Store, d.ImageCostMicros, d.Guard)
}
