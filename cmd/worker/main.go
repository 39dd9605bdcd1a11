package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"go-wedding/internal/config"
	cacheadapter "go-wedding/internal/infrastructure/cache/adapter"
	"go-wedding/internal/infrastructure/database"
	notifieradapter "go-wedding/internal/infrastructure/notifier/adapter"
	notifier "go-wedding/internal/infrastructure/notifier/port"
	queueadapter "go-wedding/internal/infrastructure/queue/adapter"
	"go-wedding/internal/logging"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/messaging/application/task"
	"go-wedding/internal/pkg/messaging/application/usecase"
	"go-wedding/internal/pkg/messaging/persistence/repository/adapter"
)

const sweepSchedule = "@every 5m"

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

	pool, err := database.Connect(startCtx, cfg.DatabaseURL, database.WithMaxConns(int32(cfg.Asynq.Concurrency)+4))
	if err != nil {
		logging.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()
	if err := database.EnsureSchemaPool(startCtx, pool); err != nil {
		logging.Fatal().Err(err).Msg("apply schema")
	}

	counters, err := cacheadapter.NewRedisCache(startCtx, cfg.RedisURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("connect redis")
	}
	defer counters.Close()

	client, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("create queue client")
	}
	defer client.Close()
	scheduler := task.NewScheduler(client)

	repo := adapter.NewPgMessagingRepository(pool)
	process := usecase.NewProcessJobUseCase(
		repo,
		scheduler,
		counters,
		notifiers(cfg),
		map[messaging.Channel]int64{
			messaging.ChannelWhatsApp: cfg.Costs.WhatsAppMicros,
			messaging.ChannelSMS:      cfg.Costs.SMSMicros,
			messaging.ChannelVoice:    cfg.Costs.VoiceMicros,
		},
		usecase.ProcessSettings{
			ChunkSize:   cfg.Messaging.ChunkSize,
			MaxAttempts: cfg.Messaging.MaxAttempts,
			GuestLimit:  cfg.Messaging.GuestLimit,
			GuestWindow: cfg.Messaging.GuestWindow,
			RetryDelay:  cfg.Messaging.RetryDelay,
			LeaseFor:    cfg.Messaging.StaleAfter,
		},
		cfg.Messaging.ProviderRPS,
	)

	srv, err := queueadapter.NewAsynqServer(queueadapter.ServerConfig{
		RedisURL:    cfg.RedisURL,
		Concurrency: cfg.Asynq.Concurrency,
		Queues:      cfg.Asynq.Queues,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("create queue server")
	}
	task.Register(srv, process)

	sweep := usecase.NewSweepStaleUseCase(repo, scheduler, cfg.Messaging.StaleAfter)
	c := cron.New()
	if _, err := c.AddFunc(sweepSchedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		n, err := sweep.Execute(runCtx)
		if err != nil {
			logging.Error().Err(err).Msg("sweep stale jobs")
			return
		}
		if n > 0 {
			logging.Info().Int("requeued", n).Msg("stale jobs requeued")
		}
	}); err != nil {
		logging.Fatal().Err(err).Msg("schedule sweeper")
	}
	c.Start()

	go serveMetrics(cfg.Asynq.MetricsAddr)

	logging.Info().Int("concurrency", cfg.Asynq.Concurrency).Msg("worker started")
	if err := srv.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("queue server")
	}
	<-c.Stop().Done()
	logging.Info().Msg("worker stopped")
}

// notifiers builds one provider per channel that has credentials.
func notifiers(cfg *config.Config) map[messaging.Channel]notifier.Notifier {
	out := make(map[messaging.Channel]notifier.Notifier)
	if cfg.WhatsApp.Token != "" && cfg.WhatsApp.PhoneNumberID != "" {
		out[messaging.ChannelWhatsApp] = notifieradapter.NewWhatsAppNotifier(notifieradapter.WhatsAppConfig{
			APIBase:       cfg.WhatsApp.APIBase,
			Token:         cfg.WhatsApp.Token,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		})
	}
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" {
		tw := notifieradapter.TwilioConfig{
			APIBase:           cfg.Twilio.APIBase,
			AccountSID:        cfg.Twilio.AccountSID,
			AuthToken:         cfg.Twilio.AuthToken,
			From:              cfg.Twilio.From,
			StatusCallbackURL: cfg.Twilio.StatusCallbackURL,
		}
		out[messaging.ChannelSMS] = notifieradapter.NewTwilioSMSNotifier(tw)
		out[messaging.ChannelVoice] = notifieradapter.NewTwilioVoiceNotifier(tw)
	}
	for _, ch := range []messaging.Channel{messaging.ChannelWhatsApp, messaging.ChannelSMS, messaging.ChannelVoice} {
		if out[ch] == nil {
			logging.Warn().Str("channel", string(ch)).Msg("no provider configured; messages on this channel will fail")
		}
	}
	return out
}

func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logging.Error().Err(err).Msg("metrics server")
	}
}
