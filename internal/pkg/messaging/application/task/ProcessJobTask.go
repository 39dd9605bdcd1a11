// Package task binds the messaging use cases to the background queue.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"go-wedding/internal/infrastructure/queue/port"
	"go-wedding/internal/pkg/messaging/application/usecase"
)

const (
	TypeProcessJob = "messaging:process_job"
	Queue          = "messaging"
	// MaxRetry caps asynq retries of a failing run; the stale sweep picks the job up after that.
	MaxRetry = 5
)

type ProcessJobPayload struct {
	JobID string `json:"job_id"`
}

// Scheduler enqueues process_job tasks.
type Scheduler struct {
	Client port.Client
}

func NewScheduler(client port.Client) *Scheduler {
	return &Scheduler{Client: client}
}

var _ usecase.Scheduler = (*Scheduler)(nil)

func (s *Scheduler) Schedule(ctx context.Context, jobID string, at time.Time) error {
	payload, err := json.Marshal(ProcessJobPayload{JobID: jobID})
	if err != nil {
		return err
	}
	opt := port.EnqueueOption{Queue: Queue, ProcessAt: at, MaxRetry: MaxRetry}
	_, err = s.Client.Enqueue(ctx, port.Task{Type: TypeProcessJob, Payload: payload}, opt)
	return err
}

// ProcessJobHandler decodes a task and runs the processor.
func ProcessJobHandler(uc *usecase.ProcessJobUseCase) port.Handler {
	return func(ctx context.Context, t port.Task) error {
		var p ProcessJobPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil || p.JobID == "" {
			return fmt.Errorf("decode %s payload: %v: %w", TypeProcessJob, err, port.ErrSkipRetry)
		}
		return uc.Execute(ctx, p.JobID)
	}
}

// Register wires the messaging handlers into a queue server.
func Register(srv port.Server, process *usecase.ProcessJobUseCase) {
	srv.Register(TypeProcessJob, ProcessJobHandler(process))
}
