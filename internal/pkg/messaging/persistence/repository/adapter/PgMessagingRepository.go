package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/database"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
)

type PgMessagingRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessagingRepository(pool *pgxpool.Pool) *PgMessagingRepository {
	return &PgMessagingRepository{pool: pool}
}

var _ repository.MessagingRepository = (*PgMessagingRepository)(nil)

const jobColumns = `id::text, event_id::text, workspace_id::text, channel, template, audience, status,
	total, sent, failed, skipped, COALESCE(created_by::text, ''), scheduled_at, started_at, finished_at,
	created_at, updated_at`

const messageColumns = `id::text, job_id::text, event_id::text, guest_id::text, channel, to_address, body,
	status, COALESCE(provider_message_id, ''), attempts, last_error, sent_at, updated_at`

func scanJob(row pgx.Row) (messaging.Job, error) {
	var j messaging.Job
	err := row.Scan(&j.ID, &j.EventID, &j.WorkspaceID, &j.Channel, &j.Template, &j.Audience, &j.Status,
		&j.Total, &j.Sent, &j.Failed, &j.Skipped, &j.CreatedBy, &j.ScheduledAt, &j.StartedAt, &j.FinishedAt,
		&j.CreatedAt, &j.UpdatedAt)
	if database.IsNoRows(err) {
		return messaging.Job{}, messaging.ErrJobNotFound
	}
	return j, err
}

func scanMessage(row pgx.Row) (messaging.Message, error) {
	var m messaging.Message
	err := row.Scan(&m.ID, &m.JobID, &m.EventID, &m.GuestID, &m.Channel, &m.To, &m.Body,
		&m.Status, &m.ProviderMessageID, &m.Attempts, &m.LastError, &m.SentAt, &m.UpdatedAt)
	if database.IsNoRows(err) {
		return messaging.Message{}, messaging.ErrMessageNotFound
	}
	return m, err
}

func collectJobs(rows pgx.Rows, err error) ([]messaging.Job, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]messaging.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) CreateJob(ctx context.Context, job messaging.Job, msgs []messaging.Message) (messaging.Job, error) {
	var created messaging.Job
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanJob(tx.QueryRow(ctx, `
			INSERT INTO message_jobs (event_id, workspace_id, channel, template, audience, status, total, created_by, scheduled_at, finished_at)
			VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10)
			RETURNING `+jobColumns,
			job.EventID, job.WorkspaceID, job.Channel, job.Template, job.Audience, job.Status,
			len(msgs), job.CreatedBy, job.ScheduledAt, job.FinishedAt))
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, m := range msgs {
			batch.Queue(`
				INSERT INTO messages (job_id, event_id, guest_id, channel, to_address, body, status)
				VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, 'pending')
			`, created.ID, m.EventID, m.GuestID, string(m.Channel), m.To, m.Body)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return messaging.Job{}, err
	}
	return created, nil
}

func (r *PgMessagingRepository) GetJob(ctx context.Context, eventID, jobID string) (messaging.Job, error) {
	return scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM message_jobs WHERE id = $1::uuid AND event_id = $2::uuid`, jobID, eventID))
}

func (r *PgMessagingRepository) LoadJob(ctx context.Context, jobID string) (messaging.Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM message_jobs WHERE id = $1::uuid`, jobID))
}

func (r *PgMessagingRepository) ListJobs(ctx context.Context, eventID string) ([]messaging.Job, error) {
	return collectJobs(r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM message_jobs WHERE event_id = $1::uuid ORDER BY created_at DESC, id`, eventID))
}

func (r *PgMessagingRepository) TransitionJob(ctx context.Context, jobID string, from []messaging.JobStatus, to messaging.JobStatus, at time.Time) (bool, error) {
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE message_jobs
		SET status = $2,
		    started_at = CASE WHEN $2 = 'running' THEN COALESCE(started_at, $3) ELSE started_at END,
		    finished_at = CASE WHEN $2 IN ('completed', 'failed', 'cancelled') THEN $3 ELSE finished_at END,
		    updated_at = $3
		WHERE id = $1::uuid AND status = ANY($4)
	`, jobID, string(to), at, states)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgMessagingRepository) CancelJob(ctx context.Context, eventID, jobID string, at time.Time) (messaging.Job, error) {
	var job messaging.Job
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		job, err = scanJob(tx.QueryRow(ctx, `
			UPDATE message_jobs SET status = 'cancelled', finished_at = $3, updated_at = $3
			WHERE id = $1::uuid AND event_id = $2::uuid AND status IN ('queued', 'running')
			RETURNING `+jobColumns, jobID, eventID, at))
		if errors.Is(err, messaging.ErrJobNotFound) {
			var status string
			lookup := tx.QueryRow(ctx, `SELECT status FROM message_jobs WHERE id = $1::uuid AND event_id = $2::uuid`, jobID, eventID).Scan(&status)
			if database.IsNoRows(lookup) {
				return messaging.ErrJobNotFound
			}
			if lookup != nil {
				return lookup
			}
			return messaging.ErrJobNotCancellable
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE messages SET status = 'skipped', last_error = $2, updated_at = $3
			WHERE job_id = $1::uuid AND status = 'pending'
		`, jobID, messaging.ReasonCancelled, at); err != nil {
			return err
		}
		job, err = recount(ctx, tx, jobID)
		return err
	})
	if err != nil {
		return messaging.Job{}, err
	}
	return job, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func recount(ctx context.Context, q querier, jobID string) (messaging.Job, error) {
	return scanJob(q.QueryRow(ctx, `
		UPDATE message_jobs SET
		    total = c.n_total,
		    sent = c.n_sent,
		    failed = c.n_failed,
		    skipped = c.n_skipped,
		    updated_at = now()
		FROM (
		    SELECT count(*) AS n_total,
		           count(*) FILTER (WHERE status IN ('sent', 'delivered', 'read')) AS n_sent,
		           count(*) FILTER (WHERE status = 'failed') AS n_failed,
		           count(*) FILTER (WHERE status = 'skipped') AS n_skipped
		    FROM messages WHERE job_id = $1::uuid
		) c
		WHERE message_jobs.id = $1::uuid
		RETURNING `+jobColumns, jobID))
}

func (r *PgMessagingRepository) RecountJob(ctx context.Context, jobID string) (messaging.Job, error) {
	return recount(ctx, r.pool, jobID)
}

func (r *PgMessagingRepository) TouchJob(ctx context.Context, jobID string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE message_jobs SET updated_at = $2 WHERE id = $1::uuid`, jobID, at)
	return err
}

func (r *PgMessagingRepository) AcquireLease(ctx context.Context, jobID, owner string, now, until time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE message_jobs SET lease_owner = $2, lease_until = $4
		WHERE id = $1::uuid
		  AND (lease_owner IS NULL OR lease_owner = $2 OR lease_until < $3)
	`, jobID, owner, now, until)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgMessagingRepository) ReleaseLease(ctx context.Context, jobID, owner string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE message_jobs SET lease_owner = NULL, lease_until = NULL
		WHERE id = $1::uuid AND lease_owner = $2
	`, jobID, owner)
	return err
}

func (r *PgMessagingRepository) StaleJobs(ctx context.Context, updatedBefore time.Time) ([]messaging.Job, error) {
	return collectJobs(r.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM message_jobs
		WHERE (status = 'running' OR (status = 'queued' AND COALESCE(scheduled_at, created_at) < $1))
		  AND updated_at < $1
		ORDER BY updated_at`, updatedBefore))
}

func (r *PgMessagingRepository) Breakdown(ctx context.Context, jobID string) (messaging.Breakdown, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM messages WHERE job_id = $1::uuid GROUP BY status`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := messaging.Breakdown{}
	for rows.Next() {
		var status messaging.MessageStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) PendingMessages(ctx context.Context, jobID, afterID string, limit int) ([]messaging.Message, error) {
	if afterID == "" {
		afterID = "00000000-0000-0000-0000-000000000000"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE job_id = $1::uuid AND status = 'pending' AND id > $2::uuid
		ORDER BY id
		LIMIT $3
	`, jobID, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]messaging.Message, 0, limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) TransitionMessage(ctx context.Context, m messaging.Message, from messaging.MessageStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET status = $3, provider_message_id = NULLIF($4, ''), attempts = $5, last_error = $6, sent_at = $7, updated_at = now()
		WHERE id = $1::uuid AND status = $2
	`, m.ID, string(from), string(m.Status), m.ProviderMessageID, m.Attempts, m.LastError, m.SentAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgMessagingRepository) SkipPending(ctx context.Context, jobID, reason string, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages SET status = 'skipped', last_error = $2, updated_at = $3
		WHERE job_id = $1::uuid AND status = 'pending'
	`, jobID, reason, at)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgMessagingRepository) FindByProviderID(ctx context.Context, providerMessageID string) (messaging.Message, error) {
	return scanMessage(r.pool.QueryRow(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE provider_message_id = $1`, providerMessageID))
}

func (r *PgMessagingRepository) LogCost(ctx context.Context, c messaging.CostLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cost_logs (workspace_id, event_id, kind, channel, units, amount_micros, reference)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7)
	`, c.WorkspaceID, c.EventID, string(c.Kind), c.Channel, c.Units, c.AmountMicros, c.Reference)
	return err
}

func (r *PgMessagingRepository) CostSummary(ctx context.Context, eventID string) ([]messaging.CostLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, channel, COALESCE(sum(units), 0)::bigint, COALESCE(sum(amount_micros), 0)::bigint
		FROM cost_logs WHERE event_id = $1::uuid
		GROUP BY kind, channel
		ORDER BY kind, channel
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]messaging.CostLine, 0)
	for rows.Next() {
		var l messaging.CostLine
		if err := rows.Scan(&l.Kind, &l.Channel, &l.Units, &l.AmountMicros); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) EventMessages(ctx context.Context, eventID string) ([]messaging.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE event_id = $1::uuid ORDER BY job_id, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]messaging.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) EventCosts(ctx context.Context, eventID string) ([]messaging.CostLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, workspace_id::text, event_id::text, kind, channel, units, amount_micros, reference, created_at
		FROM cost_logs WHERE event_id = $1::uuid
		ORDER BY created_at, id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]messaging.CostLog, 0)
	for rows.Next() {
		var c messaging.CostLog
		if err := rows.Scan(&c.ID, &c.WorkspaceID, &c.EventID, &c.Kind, &c.Channel, &c.Units, &c.AmountMicros, &c.Reference, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
