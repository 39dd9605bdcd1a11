package adapter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"

	"go-wedding/internal/infrastructure/queue/port"
	"go-wedding/internal/logging"
)

// ===================== Client =====================

// AsynqClient implements port.Client using github.com/hibiken/asynq
// and Redis as the backing store.
type AsynqClient struct {
	client *asynq.Client
}

// NewAsynqClient constructs a client for the Redis instance at redisURL.
func NewAsynqClient(redisURL string) (*AsynqClient, error) {
	opt, err := parseRedis(redisURL)
	if err != nil {
		return nil, err
	}
	return &AsynqClient{client: asynq.NewClient(opt)}, nil
}

var _ port.Client = (*AsynqClient)(nil)

func (a *AsynqClient) Enqueue(ctx context.Context, t port.Task, opts ...port.EnqueueOption) (string, error) {
	if t.Type == "" {
		return "", errors.New("asynq: task type is required")
	}
	at := asynq.NewTask(t.Type, t.Payload)
	info, err := a.client.EnqueueContext(ctx, at, toAsynqOptions(opts)...)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (a *AsynqClient) Close() error {
	return a.client.Close()
}

// toAsynqOptions maps the first option onto asynq options; callers pass one consolidated option.
func toAsynqOptions(opts []port.EnqueueOption) []asynq.Option {
	if len(opts) == 0 {
		return nil
	}
	op := opts[0]
	var out []asynq.Option
	if !op.ProcessAt.IsZero() {
		out = append(out, asynq.ProcessAt(op.ProcessAt))
	} else if op.ProcessIn > 0 {
		out = append(out, asynq.ProcessIn(op.ProcessIn))
	}
	if op.Queue != "" {
		out = append(out, asynq.Queue(op.Queue))
	}
	if op.MaxRetry > 0 {
		out = append(out, asynq.MaxRetry(op.MaxRetry))
	}
	return out
}

// ===================== Server =====================

// AsynqServer implements port.Server using github.com/hibiken/asynq
type AsynqServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// ServerConfig tunes worker concurrency and queue priorities.
type ServerConfig struct {
	RedisURL    string
	Concurrency int
	// Queues is a CSV like "messaging=6,default=1".
	Queues string
}

// NewAsynqServer constructs a server. Unset concurrency defaults to 10 and unset
// queues default to "messaging" and "default" with equal weight.
func NewAsynqServer(cfg ServerConfig) (*AsynqServer, error) {
	opt, err := parseRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	queues := map[string]int{"default": 1, "messaging": 1}
	if parsed := parseQueueWeights(cfg.Queues); len(parsed) > 0 {
		queues = parsed
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logging.Error().Err(err).
				Str("task_type", task.Type()).
				Int("retry", retried).
				Int("max_retry", maxRetry).
				Msg("task failed")
		}),
	})
	return &AsynqServer{server: srv, mux: asynq.NewServeMux()}, nil
}

var _ port.Server = (*AsynqServer)(nil)

func (s *AsynqServer) Register(taskType string, h port.Handler) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		ctx = logging.ContextWithRequestID(ctx, logging.NewRequestID())
		err := h(ctx, port.Task{Type: t.Type(), Payload: t.Payload()})
		if errors.Is(err, port.ErrSkipRetry) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	})
}

// Run starts the server and blocks until the context is canceled, then gracefully shuts down.
func (s *AsynqServer) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return nil
}

// Stop gracefully shuts down the server.
func (s *AsynqServer) Stop(ctx context.Context) error {
	_ = ctx // asynq Shutdown takes no context
	s.server.Shutdown()
	return nil
}

func parseRedis(redisURL string) (asynq.RedisConnOpt, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("asynq: redis url is empty")
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse redis url: %w", err)
	}
	return opt, nil
}

// parseQueueWeights parses strings like "critical=6,default=3,low=1" into a map.
func parseQueueWeights(s string) map[string]int {
	res := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		w := 1
		if len(kv) == 2 {
			if i, err := strconv.Atoi(strings.TrimSpace(kv[1])); err == nil && i > 0 {
				w = i
			}
		}
		res[name] = w
	}
	return res
}
