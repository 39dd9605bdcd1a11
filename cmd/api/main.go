package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "go-wedding/cmd/api/router/v1"
	"go-wedding/internal/config"
	cacheadapter "go-wedding/internal/infrastructure/cache/adapter"
	"go-wedding/internal/infrastructure/database"
	imageadapter "go-wedding/internal/infrastructure/imagegen/adapter"
	queueadapter "go-wedding/internal/infrastructure/queue/adapter"
	"go-wedding/internal/infrastructure/realtime"
	storageadapter "go-wedding/internal/infrastructure/storage/adapter"
	"go-wedding/internal/infrastructure/storage/memory"
	storage "go-wedding/internal/infrastructure/storage/port"
	"go-wedding/internal/infrastructure/web"
	"go-wedding/internal/logging"
	eventusecase "go-wedding/internal/pkg/event/application/usecase"
	eventadapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/application/session"
	identityusecase "go-wedding/internal/pkg/identity/application/usecase"
	identityadapter "go-wedding/internal/pkg/identity/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/messaging/application/task"
	messagingcontroller "go-wedding/internal/pkg/messaging/presentation/controller"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := database.Connect(startCtx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()
	if err := database.EnsureSchemaPool(startCtx, pool); err != nil {
		logging.Fatal().Err(err).Msg("apply schema")
	}

	cache, err := cacheadapter.NewRedisCache(startCtx, cfg.RedisURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect redis")
	}
	defer cache.Close()

	queue, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("create queue client")
	}
	defer queue.Close()

	store := objectStore(startCtx, cfg)

	hub := realtime.NewRouter()
	defer hub.Close()

	tokens := session.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	guard := &middleware.Guard{
		Tokens:    tokens,
		Authorize: identityusecase.NewAuthorizeUseCase(identityadapter.NewPgIdentityRepository(pool)),
		Events:    eventusecase.NewWorkspaceOfUseCase(eventadapter.NewPgEventRepository(pool)),
	}

	gin.SetMode(gin.ReleaseMode)
	web.RegisterValidators()
	r := gin.New()
	r.Use(web.RequestID(), web.AccessLog(), web.Recovery())

	r.GET("/healthz", web.Healthz(map[string]web.Pinger{"postgres": pool, "redis": cache}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.RegisterRoutes(r, v1.Deps{
		Pool:     pool,
		Cache:    cache,
		Realtime: hub,
		Store:    store,
		Images: imageadapter.NewEditClient(imageadapter.Config{
			APIBase: cfg.Image.APIBase,
			APIKey:  cfg.Image.APIKey,
			Model:   cfg.Image.Model,
		}),
		ImageCostMicros: cfg.Costs.ImageMicros,
		Scheduler:       task.NewScheduler(queue),
		Tokens:          tokens,
		Guard:           guard,
		PublicBaseURL:   cfg.PublicBaseURL,
		Webhooks: messagingcontroller.WebhookConfig{
			TwilioAuthToken:     cfg.Twilio.AuthToken,
			TwilioCallbackURL:   cfg.Twilio.StatusCallbackURL,
			PublicBaseURL:       cfg.PublicBaseURL,
			WhatsAppVerifyToken: cfg.WhatsApp.VerifyToken,
			WhatsAppAppSecret:   cfg.WhatsApp.AppSecret,
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.Info().Str("addr", cfg.HTTPAddr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}
}

// objectStore returns the S3 bucket, or an in-process store when no bucket is
// configured so local runs work without credentials.
func objectStore(ctx context.Context, cfg *config.Config) storage.ObjectStore {
	if cfg.S3.Bucket == "" {
		logging.Warn().Msg("S3_BUCKET unset; archives and invitations are kept in memory")
		return memory.New(cfg.PublicBaseURL + "/files")
	}
	s3, err := storageadapter.NewS3Store(ctx, storageadapter.S3Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		PathStyle:       cfg.S3.PathStyle,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("configure s3")
	}
	return s3
}
