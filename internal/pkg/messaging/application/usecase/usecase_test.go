package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-wedding/internal/infrastructure/cache/memory"
	notifier "go-wedding/internal/infrastructure/notifier/port"
	guest "go-wedding/internal/pkg/guest/application/domain"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
)

var clock = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return clock }

func fixtures() (stubEvents, stubGuests) {
	date := time.Date(2026, 6, 6, 16, 0, 0, 0, time.UTC)
	events := stubEvents{"e1": {ID: "e1", WorkspaceID: "w1", Title: "Ana & Bo", Venue: "Quinta", EventDate: &date}}
	guests := stubGuests{
		{Guest: guest.Guest{ID: "g1", EventID: "e1", Name: "Ana", Phone: "+15550000001", InvitedCount: 1, InviteToken: "t1"}, RSVP: guest.RSVP{Status: guest.StatusPending}},
		{Guest: guest.Guest{ID: "g2", EventID: "e1", Name: "Bo", Phone: "+15550000002", InvitedCount: 2, InviteToken: "t2"}, RSVP: guest.RSVP{Status: guest.StatusAccepted, PartySize: 2}},
		{Guest: guest.Guest{ID: "g3", EventID: "e1", Name: "Cy", InvitedCount: 1, InviteToken: "t3"}, RSVP: guest.RSVP{Status: guest.StatusPending}},
	}
	return events, guests
}

type harness struct {
	repo     *memMessaging
	queue    *fakeScheduler
	provider *scriptedNotifier
	create   *CreateJobUseCase
	process  *ProcessJobUseCase
}

func newHarness(settings ProcessSettings) *harness {
	events, guests := fixtures()
	h := &harness{
		repo:     newMemMessaging(),
		queue:    &fakeScheduler{},
		provider: &scriptedNotifier{script: map[string][]error{}},
	}
	h.create = NewCreateJobUseCase(h.repo, events, guests, h.queue, "https://wedding.example/")
	h.create.Now = fixedNow
	h.process = NewProcessJobUseCase(
		h.repo, h.queue, memory.New(),
		map[messaging.Channel]notifier.Notifier{messaging.ChannelSMS: h.provider},
		map[messaging.Channel]int64{messaging.ChannelSMS: 7500},
		settings, 1000,
	)
	h.process.Now = fixedNow
	return h
}

func defaultSettings() ProcessSettings {
	return ProcessSettings{ChunkSize: 10, MaxAttempts: 3, RetryDelay: time.Minute}
}

func (h *harness) newJob(t *testing.T, audience messaging.Audience) *messaging.Job {
	t.Helper()
	job, err := h.create.Execute(context.Background(), CreateJobInput{
		EventID:   "e1",
		CreatedBy: "u1",
		Channel:   messaging.ChannelSMS,
		Template:  "Hi {name}, {event} is on {date} at {venue}. RSVP: {rsvp_link}",
		Audience:  audience,
	})
	require.NoError(t, err)
	return job
}

func TestCreateJobRendersPerGuest(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)

	assert.Equal(t, messaging.JobQueued, job.Status)
	assert.Equal(t, "w1", job.WorkspaceID)
	assert.Equal(t, 2, job.Total)
	require.Len(t, h.queue.calls, 1)
	assert.Equal(t, job.ID, h.queue.calls[0].jobID)
	assert.True(t, h.queue.calls[0].at.IsZero())

	pending := h.repo.byStatus(job.ID, messaging.MessagePending)
	require.Len(t, pending, 2)
	assert.Equal(t, "+15550000001", pending[0].To)
	assert.Equal(t, "Hi Ana, Ana & Bo is on Saturday, June 6, 2026 at Quinta. RSVP: https://wedding.example/rsvp/t1", pending[0].Body)
}

func TestCreateJobAudienceAndSchedule(t *testing.T) {
	h := newHarness(defaultSettings())
	at := clock.Add(2 * time.Hour)
	job, err := h.create.Execute(context.Background(), CreateJobInput{
		EventID: "e1", Channel: messaging.ChannelSMS, Template: "Hi {name}",
		Audience: messaging.AudienceAccepted, ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, job.Total)
	require.Len(t, h.queue.calls, 1)
	assert.Equal(t, at, h.queue.calls[0].at)
}

func TestCreateJobEmptyAudienceCompletes(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceDeclined)
	assert.Equal(t, messaging.JobCompleted, job.Status)
	assert.NotNil(t, job.FinishedAt)
	assert.Equal(t, 0, job.Total)
	assert.Empty(t, h.queue.calls)
}

func TestCreateJobValidation(t *testing.T) {
	h := newHarness(defaultSettings())
	ctx := context.Background()
	_, err := h.create.Execute(ctx, CreateJobInput{EventID: "e1", Channel: "fax", Template: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = h.create.Execute(ctx, CreateJobInput{EventID: "e1", Channel: messaging.ChannelSMS, Template: " "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = h.create.Execute(ctx, CreateJobInput{EventID: "e1", Channel: messaging.ChannelSMS, Template: "x", Audience: "vip"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = h.create.Execute(ctx, CreateJobInput{EventID: "nope", Channel: messaging.ChannelSMS, Template: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProcessJobSendsEverything(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))

	done, err := h.repo.LoadJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, messaging.JobCompleted, done.Status)
	assert.Equal(t, 2, done.Sent)
	assert.NotNil(t, done.StartedAt)
	assert.NotNil(t, done.FinishedAt)

	sent := h.repo.byStatus(job.ID, messaging.MessageSent)
	require.Len(t, sent, 2)
	assert.NotEmpty(t, sent[0].ProviderMessageID)
	assert.Equal(t, 1, sent[0].Attempts)
	assert.NotNil(t, sent[0].SentAt)

	require.Len(t, h.repo.costs, 2)
	assert.Equal(t, messaging.CostMessage, h.repo.costs[0].Kind)
	assert.Equal(t, int64(7500), h.repo.costs[0].AmountMicros)
	assert.Equal(t, "w1", h.repo.costs[0].WorkspaceID)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	assert.Len(t, h.provider.sent, 2)
}

func TestProcessJobRetriesTransientErrors(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	h.provider.script["+15550000001"] = []error{notifier.Classify("sms", 503, "busy")}
	h.queue.calls = nil

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	pending := h.repo.byStatus(job.ID, messaging.MessagePending)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Contains(t, pending[0].LastError, "busy")
	require.Len(t, h.queue.calls, 1)
	assert.Equal(t, clock.Add(time.Minute), h.queue.calls[0].at)

	running, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobRunning, running.Status)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobCompleted, done.Status)
	assert.Equal(t, 2, done.Sent)
}

func TestProcessJobGivesUpAfterMaxAttempts(t *testing.T) {
	settings := defaultSettings()
	settings.MaxAttempts = 2
	h := newHarness(settings)
	job := h.newJob(t, messaging.AudienceAccepted)
	busy := notifier.Classify("sms", 500, "down")
	h.provider.script["+15550000002"] = []error{busy, busy, busy}

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	require.NoError(t, h.process.Execute(context.Background(), job.ID))

	failed := h.repo.byStatus(job.ID, messaging.MessageFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].Attempts)
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobFailed, done.Status)
}

func TestProcessJobPermanentErrorFailsImmediately(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	h.provider.script["+15550000001"] = []error{notifier.Classify("sms", 400, "invalid number")}

	require.NoError(t, h.process.Execute(context.Background(), job.ID))

	failed := h.repo.byStatus(job.ID, messaging.MessageFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Attempts)
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobCompleted, done.Status)
	assert.Equal(t, 1, done.Sent)
	assert.Equal(t, 1, done.Failed)
	assert.Len(t, h.repo.costs, 1)
}

func TestProcessJobRateLimitsPerGuest(t *testing.T) {
	settings := defaultSettings()
	settings.GuestLimit = 1
	settings.GuestWindow = time.Hour
	h := newHarness(settings)

	first := h.newJob(t, messaging.AudienceAll)
	require.NoError(t, h.process.Execute(context.Background(), first.ID))
	second := h.newJob(t, messaging.AudienceAll)
	require.NoError(t, h.process.Execute(context.Background(), second.ID))

	skipped := h.repo.byStatus(second.ID, messaging.MessageSkipped)
	require.Len(t, skipped, 2)
	assert.Equal(t, messaging.ReasonRateLimited, skipped[0].LastError)
	done, _ := h.repo.LoadJob(context.Background(), second.ID)
	assert.Equal(t, messaging.JobCompleted, done.Status)
	assert.Equal(t, 2, done.Skipped)
	assert.Len(t, h.provider.sent, 2)
}

func TestProcessJobStopsWhenCancelledBetweenChunks(t *testing.T) {
	settings := defaultSettings()
	settings.ChunkSize = 1
	h := newHarness(settings)
	job := h.newJob(t, messaging.AudienceAll)
	h.provider.onSend = func(notifier.Outbound) { h.repo.setJobStatus(job.ID, messaging.JobCancelled) }

	require.NoError(t, h.process.Execute(context.Background(), job.ID))

	assert.Len(t, h.provider.sent, 1)
	skipped := h.repo.byStatus(job.ID, messaging.MessageSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, messaging.ReasonCancelled, skipped[0].LastError)
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobCancelled, done.Status)
	assert.Equal(t, 1, done.Sent)
	assert.Equal(t, 1, done.Skipped)
}

func TestProcessJobHonoursContext(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.process.Execute(ctx, job.ID)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.provider.sent)
	assert.Len(t, h.repo.byStatus(job.ID, messaging.MessagePending), 2)
}

func TestProcessJobMissingProviderFails(t *testing.T) {
	h := newHarness(defaultSettings())
	h.process.Notifiers = map[messaging.Channel]notifier.Notifier{}
	job := h.newJob(t, messaging.AudienceAll)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobFailed, done.Status)
	assert.Equal(t, 2, done.Failed)
}

func TestProcessJobIgnoresMissingJob(t *testing.T) {
	h := newHarness(defaultSettings())
	assert.NoError(t, h.process.Execute(context.Background(), "job-gone"))
}

func TestProcessJobConcurrentRunsSendOnce(t *testing.T) {
	h := newHarness(defaultSettings())
	h.provider.delay = 50 * time.Millisecond
	job := h.newJob(t, messaging.AudienceAll)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = h.process.Execute(context.Background(), job.ID)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	sends := map[string]int{}
	for _, out := range h.provider.sent {
		sends[out.Reference]++
	}
	assert.Len(t, sends, 2)
	for id, n := range sends {
		assert.Equal(t, 1, n, "sends for %s", id)
	}
	assert.Len(t, h.repo.costs, 2)

	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, messaging.JobCompleted, done.Status)
	_, leased := h.repo.leaseOf(job.ID)
	assert.False(t, leased)
}

func TestProcessJobSkipsLeasedJob(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	ok, err := h.repo.AcquireLease(context.Background(), job.ID, "other-worker", clock, clock.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	assert.Empty(t, h.provider.sent)
	assert.Len(t, h.repo.byStatus(job.ID, messaging.MessagePending), 2)
	held, _ := h.repo.leaseOf(job.ID)
	assert.Equal(t, "other-worker", held.owner)

	h.process.Now = func() time.Time { return clock.Add(2 * time.Minute) }
	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	assert.Len(t, h.provider.sent, 2)
}

func TestProcessJobStopsWhenJobVanishesMidRun(t *testing.T) {
	settings := defaultSettings()
	settings.ChunkSize = 1
	h := newHarness(settings)
	job := h.newJob(t, messaging.AudienceAll)
	h.queue.calls = nil
	h.provider.onSend = func(notifier.Outbound) { h.repo.dropJob(job.ID) }

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	assert.Len(t, h.provider.sent, 1)
	assert.Empty(t, h.queue.calls)
}

func TestCancelJob(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	uc := NewCancelJobUseCase(h.repo)

	cancelled, err := uc.Execute(context.Background(), CancelJobInput{EventID: "e1", JobID: job.ID})
	require.NoError(t, err)
	assert.Equal(t, messaging.JobCancelled, cancelled.Status)
	assert.Equal(t, 2, cancelled.Skipped)

	_, err = uc.Execute(context.Background(), CancelJobInput{EventID: "e1", JobID: job.ID})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = uc.Execute(context.Background(), CancelJobInput{EventID: "e2", JobID: job.ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	assert.Empty(t, h.provider.sent)
}

func TestGetAndListJobs(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	h.provider.script["+15550000002"] = []error{notifier.Classify("sms", 400, "blocked")}
	require.NoError(t, h.process.Execute(context.Background(), job.ID))

	detail, err := NewGetJobUseCase(h.repo).Execute(context.Background(), GetJobInput{EventID: "e1", JobID: job.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Breakdown[messaging.MessageSent])
	assert.Equal(t, 1, detail.Breakdown[messaging.MessageFailed])

	jobs, err := NewListJobsUseCase(h.repo).Execute(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	_, err = NewGetJobUseCase(h.repo).Execute(context.Background(), GetJobInput{EventID: "e2", JobID: job.ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordStatusIsMonotonic(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAccepted)
	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	providerID := h.repo.byStatus(job.ID, messaging.MessageSent)[0].ProviderMessageID
	uc := NewRecordStatusUseCase(h.repo)
	ctx := context.Background()

	changed, err := uc.Execute(ctx, RecordStatusInput{ProviderMessageID: providerID, Status: messaging.MessageRead})
	require.NoError(t, err)
	assert.True(t, changed)

	for _, late := range []messaging.MessageStatus{messaging.MessageDelivered, messaging.MessageSent, messaging.MessageFailed} {
		changed, err = uc.Execute(ctx, RecordStatusInput{ProviderMessageID: providerID, Status: late})
		require.NoError(t, err)
		assert.False(t, changed, "%s after read", late)
	}
	assert.Len(t, h.repo.byStatus(job.ID, messaging.MessageRead), 1)

	changed, err = uc.Execute(ctx, RecordStatusInput{ProviderMessageID: "unknown", Status: messaging.MessageDelivered})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRecordStatusFailureRecountsJob(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAccepted)
	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	providerID := h.repo.byStatus(job.ID, messaging.MessageSent)[0].ProviderMessageID

	changed, err := NewRecordStatusUseCase(h.repo).Execute(context.Background(), RecordStatusInput{
		ProviderMessageID: providerID, Status: messaging.MessageFailed, Error: "30003",
	})
	require.NoError(t, err)
	assert.True(t, changed)
	failed := h.repo.byStatus(job.ID, messaging.MessageFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "30003", failed[0].LastError)
	done, _ := h.repo.LoadJob(context.Background(), job.ID)
	assert.Equal(t, 1, done.Failed)
	assert.Equal(t, 0, done.Sent)
}

func TestHandleReply(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	sent := h.repo.byStatus(job.ID, messaging.MessageSent)
	rsvp := &recordedRSVP{}
	uc := NewHandleReplyUseCase(h.repo, rsvp)
	ctx := context.Background()

	ok, err := uc.Execute(ctx, HandleReplyInput{ContextMessageID: sent[1].ProviderMessageID, Payload: ReplyAccept})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, rsvp.calls, 1)
	assert.Equal(t, "e1", rsvp.calls[0].EventID)
	assert.Equal(t, *sent[1].GuestID, rsvp.calls[0].GuestID)
	assert.Equal(t, guest.StatusAccepted, rsvp.calls[0].Answer.Status)
	assert.True(t, rsvp.calls[0].FullParty)

	ok, err = uc.Execute(ctx, HandleReplyInput{ContextMessageID: sent[0].ProviderMessageID, Payload: ReplyDecline})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, guest.StatusDeclined, rsvp.calls[1].Answer.Status)

	ok, err = uc.Execute(ctx, HandleReplyInput{ContextMessageID: sent[0].ProviderMessageID, Payload: "MAYBE"})
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = uc.Execute(ctx, HandleReplyInput{ContextMessageID: "unknown", Payload: ReplyAccept})
	require.NoError(t, err)
	assert.False(t, ok)

	rsvp.err = errors.New("db down")
	_, err = uc.Execute(ctx, HandleReplyInput{ContextMessageID: sent[0].ProviderMessageID, Payload: ReplyAccept})
	assert.Error(t, err)
}

func TestCostSummary(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	require.NoError(t, h.process.Execute(context.Background(), job.ID))
	eventID := "e1"
	require.NoError(t, h.repo.LogCost(context.Background(), messaging.CostLog{
		WorkspaceID: "w1", EventID: &eventID, Kind: messaging.CostImage, Units: 1, AmountMicros: 40000,
	}))

	s, err := NewCostSummaryUseCase(h.repo).Execute(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(2*7500+40000), s.TotalMicros)
	assert.Len(t, s.Lines, 2)
}

func TestSweepStale(t *testing.T) {
	h := newHarness(defaultSettings())
	job := h.newJob(t, messaging.AudienceAll)
	h.repo.setJobStatus(job.ID, messaging.JobRunning)
	h.queue.calls = nil

	sweep := NewSweepStaleUseCase(h.repo, h.queue, 5*time.Minute)
	sweep.Now = func() time.Time { return clock.Add(10 * time.Minute) }
	n, err := sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, h.queue.calls, 1)
	assert.Equal(t, job.ID, h.queue.calls[0].jobID)

	n, err = sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRSVPLink(t *testing.T) {
	assert.Equal(t, "https://w.example/rsvp/abc", RSVPLink("https://w.example", "abc"))
}
