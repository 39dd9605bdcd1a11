package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	notifier "go-wedding/internal/infrastructure/notifier/port"
	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	guestusecase "go-wedding/internal/pkg/guest/application/usecase"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
)

type lease struct {
	owner string
	until time.Time
}

type memMessaging struct {
	mu     sync.Mutex
	seq    int
	jobs   map[string]messaging.Job
	msgs   map[string]messaging.Message
	costs  []messaging.CostLog
	leases map[string]lease
}

func newMemMessaging() *memMessaging {
	return &memMessaging{
		jobs:   map[string]messaging.Job{},
		msgs:   map[string]messaging.Message{},
		leases: map[string]lease{},
	}
}

func (m *memMessaging) next(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%04d", prefix, m.seq)
}

func (m *memMessaging) CreateJob(_ context.Context, job messaging.Job, msgs []messaging.Message) (messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.ID = m.next("job")
	job.Total = len(msgs)
	m.jobs[job.ID] = job
	for _, msg := range msgs {
		msg.ID = m.next("msg")
		msg.JobID = job.ID
		msg.Status = messaging.MessagePending
		m.msgs[msg.ID] = msg
	}
	return job, nil
}

func (m *memMessaging) GetJob(_ context.Context, eventID, jobID string) (messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok || j.EventID != eventID {
		return messaging.Job{}, messaging.ErrJobNotFound
	}
	return j, nil
}

func (m *memMessaging) LoadJob(_ context.Context, jobID string) (messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return messaging.Job{}, messaging.ErrJobNotFound
	}
	return j, nil
}

func (m *memMessaging) ListJobs(_ context.Context, eventID string) ([]messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.Job{}
	for _, j := range m.jobs {
		if j.EventID == eventID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *memMessaging) TransitionJob(_ context.Context, jobID string, from []messaging.JobStatus, to messaging.JobStatus, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if j.Status == s {
			j.Status = to
			if to == messaging.JobRunning && j.StartedAt == nil {
				j.StartedAt = &at
			}
			if to.Terminal() {
				j.FinishedAt = &at
			}
			j.UpdatedAt = at
			m.jobs[jobID] = j
			return true, nil
		}
	}
	return false, nil
}

func (m *memMessaging) CancelJob(ctx context.Context, eventID, jobID string, at time.Time) (messaging.Job, error) {
	j, err := m.GetJob(ctx, eventID, jobID)
	if err != nil {
		return messaging.Job{}, err
	}
	if j.Status.Terminal() {
		return messaging.Job{}, messaging.ErrJobNotCancellable
	}
	m.mu.Lock()
	j.Status = messaging.JobCancelled
	j.FinishedAt = &at
	m.jobs[jobID] = j
	m.mu.Unlock()
	if _, err := m.SkipPending(ctx, jobID, messaging.ReasonCancelled, at); err != nil {
		return messaging.Job{}, err
	}
	return m.RecountJob(ctx, jobID)
}

func (m *memMessaging) RecountJob(_ context.Context, jobID string) (messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return messaging.Job{}, messaging.ErrJobNotFound
	}
	j.Total, j.Sent, j.Failed, j.Skipped = 0, 0, 0, 0
	for _, msg := range m.msgs {
		if msg.JobID != jobID {
			continue
		}
		j.Total++
		switch msg.Status {
		case messaging.MessageSent, messaging.MessageDelivered, messaging.MessageRead:
			j.Sent++
		case messaging.MessageFailed:
			j.Failed++
		case messaging.MessageSkipped:
			j.Skipped++
		}
	}
	m.jobs[jobID] = j
	return j, nil
}

func (m *memMessaging) TouchJob(_ context.Context, jobID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[jobID]; ok {
		j.UpdatedAt = at
		m.jobs[jobID] = j
	}
	return nil
}

func (m *memMessaging) AcquireLease(_ context.Context, jobID, owner string, now, until time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[jobID]; !ok {
		return false, nil
	}
	if cur, ok := m.leases[jobID]; ok && cur.owner != owner && !cur.until.Before(now) {
		return false, nil
	}
	m.leases[jobID] = lease{owner: owner, until: until}
	return true, nil
}

func (m *memMessaging) ReleaseLease(_ context.Context, jobID, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.leases[jobID]; ok && cur.owner == owner {
		delete(m.leases, jobID)
	}
	return nil
}

func (m *memMessaging) leaseOf(jobID string) (lease, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leases[jobID]
	return l, ok
}

func (m *memMessaging) StaleJobs(_ context.Context, updatedBefore time.Time) ([]messaging.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.Job{}
	for _, j := range m.jobs {
		if (j.Status == messaging.JobRunning || j.Status == messaging.JobQueued) && j.UpdatedAt.Before(updatedBefore) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *memMessaging) Breakdown(_ context.Context, jobID string) (messaging.Breakdown, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := messaging.Breakdown{}
	for _, msg := range m.msgs {
		if msg.JobID == jobID {
			out[msg.Status]++
		}
	}
	return out, nil
}

func (m *memMessaging) PendingMessages(_ context.Context, jobID, afterID string, limit int) ([]messaging.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.Message{}
	for _, msg := range m.msgs {
		if msg.JobID == jobID && msg.Status == messaging.MessagePending && msg.ID > afterID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memMessaging) TransitionMessage(_ context.Context, next messaging.Message, from messaging.MessageStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.msgs[next.ID]
	if !ok || cur.Status != from {
		return false, nil
	}
	m.msgs[next.ID] = next
	return true, nil
}

func (m *memMessaging) SkipPending(_ context.Context, jobID, reason string, _ time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, msg := range m.msgs {
		if msg.JobID == jobID && msg.Status == messaging.MessagePending {
			msg.Status = messaging.MessageSkipped
			msg.LastError = reason
			m.msgs[id] = msg
			n++
		}
	}
	return n, nil
}

func (m *memMessaging) FindByProviderID(_ context.Context, providerID string) (messaging.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.msgs {
		if providerID != "" && msg.ProviderMessageID == providerID {
			return msg, nil
		}
	}
	return messaging.Message{}, messaging.ErrMessageNotFound
}

func (m *memMessaging) LogCost(_ context.Context, c messaging.CostLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.costs = append(m.costs, c)
	return nil
}

func (m *memMessaging) CostSummary(_ context.Context, eventID string) ([]messaging.CostLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := map[string]int{}
	out := []messaging.CostLine{}
	for _, c := range m.costs {
		if c.EventID == nil || *c.EventID != eventID {
			continue
		}
		key := string(c.Kind) + "/" + c.Channel
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, messaging.CostLine{Kind: c.Kind, Channel: c.Channel})
		}
		out[i].Units += c.Units
		out[i].AmountMicros += c.AmountMicros
	}
	return out, nil
}

func (m *memMessaging) EventMessages(_ context.Context, eventID string) ([]messaging.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.Message{}
	for _, msg := range m.msgs {
		if msg.EventID == eventID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *memMessaging) EventCosts(_ context.Context, eventID string) ([]messaging.CostLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.CostLog{}
	for _, c := range m.costs {
		if c.EventID != nil && *c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memMessaging) setJobStatus(jobID string, status messaging.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := m.jobs[jobID]
	j.Status = status
	m.jobs[jobID] = j
}

func (m *memMessaging) dropJob(jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
	delete(m.leases, jobID)
	for id, msg := range m.msgs {
		if msg.JobID == jobID {
			delete(m.msgs, id)
		}
	}
}

func (m *memMessaging) byStatus(jobID string, status messaging.MessageStatus) []messaging.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []messaging.Message{}
	for _, msg := range m.msgs {
		if msg.JobID == jobID && msg.Status == status {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

type scheduled struct {
	jobID string
	at    time.Time
}

type fakeScheduler struct {
	mu    sync.Mutex
	calls []scheduled
	err   error
}

func (s *fakeScheduler) Schedule(_ context.Context, jobID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, scheduled{jobID: jobID, at: at})
	return nil
}

// scriptedNotifier answers each send with the next scripted error; nil or an
// exhausted script means success.
type scriptedNotifier struct {
	mu     sync.Mutex
	sent   []notifier.Outbound
	script map[string][]error
	seq    int
	delay  time.Duration
	onSend func(notifier.Outbound)
}

func (n *scriptedNotifier) Send(_ context.Context, out notifier.Outbound) (notifier.Receipt, error) {
	if n.delay > 0 {
		time.Sleep(n.delay)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if errs := n.script[out.To]; len(errs) > 0 {
		n.script[out.To] = errs[1:]
		if errs[0] != nil {
			return notifier.Receipt{}, errs[0]
		}
	}
	n.seq++
	n.sent = append(n.sent, out)
	if n.onSend != nil {
		n.onSend(out)
	}
	return notifier.Receipt{ProviderMessageID: fmt.Sprintf("prov-%d", n.seq)}, nil
}

type stubEvents map[string]event.Event

func (s stubEvents) Get(_ context.Context, id string) (event.Event, error) {
	e, ok := s[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return e, nil
}

type stubGuests []guest.GuestView

func (s stubGuests) List(_ context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error) {
	out := []guest.GuestView{}
	for _, g := range s {
		if g.EventID != eventID {
			continue
		}
		if status != nil && g.RSVP.Status != *status {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

type recordedRSVP struct {
	calls []guestusecase.SetRSVPInput
	err   error
}

func (r *recordedRSVP) Execute(_ context.Context, in guestusecase.SetRSVPInput) (*guest.GuestView, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.calls = append(r.calls, in)
	return &guest.GuestView{}, nil
}
