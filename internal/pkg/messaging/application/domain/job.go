package messaging

import (
	"time"

	"go-wedding/internal/pkg/platform/apperr"
)

var (
	ErrJobNotFound       = apperr.New(apperr.ErrNotFound, "messaging: job not found")
	ErrJobNotCancellable = apperr.New(apperr.ErrConflict, "messaging: job already finished")
	ErrMessageNotFound   = apperr.New(apperr.ErrNotFound, "messaging: message not found")
)

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Terminal reports whether the job will never send again.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// Job is one bulk send to an event's guests over a single channel.
type Job struct {
	ID          string     `db:"id"`
	EventID     string     `db:"event_id"`
	WorkspaceID string     `db:"workspace_id"`
	Channel     Channel    `db:"channel"`
	Template    string     `db:"template"`
	Audience    Audience   `db:"audience"`
	Status      JobStatus  `db:"status"`
	Total       int        `db:"total"`
	Sent        int        `db:"sent"`
	Failed      int        `db:"failed"`
	Skipped     int        `db:"skipped"`
	CreatedBy   string     `db:"created_by"`
	ScheduledAt *time.Time `db:"scheduled_at"`
	StartedAt   *time.Time `db:"started_at"`
	FinishedAt  *time.Time `db:"finished_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Pending is the number of messages not yet in a final state.
func (j Job) Pending() int {
	n := j.Total - j.Sent - j.Failed - j.Skipped
	if n < 0 {
		return 0
	}
	return n
}

// Outcome is the final status of a job with nothing left to send.
func (j Job) Outcome() JobStatus {
	if j.Sent == 0 && j.Failed > 0 {
		return JobFailed
	}
	return JobCompleted
}

// Breakdown counts a job's messages per status.
type Breakdown map[MessageStatus]int
