package port

import (
	"context"
	"time"
)

// Task is one unit of background work. Payload encoding belongs to the task's owner.
type Task struct {
	Type    string
	Payload []byte
}

// Handler runs a Task. A non-nil error asks the backend to retry; handlers
// must tolerate running more than once.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption schedules a task. Zero fields keep the backend default.
type EnqueueOption struct {
	Queue     string
	ProcessAt time.Time
	ProcessIn time.Duration // ignored when ProcessAt is set
	MaxRetry  int
}

type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server dispatches tasks to registered handlers. Run blocks until ctx is done.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ErrSkipRetry can be wrapped by handlers whose failure will not heal on retry,
// such as a malformed payload.
var ErrSkipRetry = skipRetry{}

type skipRetry struct{}

func (skipRetry) Error() string { return "queue: skip retry" }
