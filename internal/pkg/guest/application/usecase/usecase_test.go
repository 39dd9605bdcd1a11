package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-wedding/internal/infrastructure/cache/memory"
	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
)

type memGuests struct {
	mu     sync.Mutex
	seq    int
	guests map[string]guest.Guest
	rsvps  map[string]guest.RSVP
	lists  int
}

func newMemGuests() *memGuests {
	return &memGuests{guests: map[string]guest.Guest{}, rsvps: map[string]guest.RSVP{}}
}

func (m *memGuests) view(g guest.Guest) guest.GuestView {
	return guest.GuestView{Guest: g, RSVP: m.rsvps[g.ID]}
}

func (m *memGuests) Create(_ context.Context, gs []guest.Guest) ([]guest.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]guest.Guest, 0, len(gs))
	for _, g := range gs {
		m.seq++
		g.ID = fmt.Sprintf("g-%03d", m.seq)
		m.guests[g.ID] = g
		m.rsvps[g.ID] = guest.RSVP{GuestID: g.ID, Status: guest.StatusPending}
		out = append(out, g)
	}
	return out, nil
}

func (m *memGuests) Get(_ context.Context, eventID, guestID string) (guest.GuestView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guests[guestID]
	if !ok || g.EventID != eventID {
		return guest.GuestView{}, guest.ErrGuestNotFound
	}
	return m.view(g), nil
}

func (m *memGuests) List(_ context.Context, eventID string, status *guest.RSVPStatus) ([]guest.GuestView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	out := []guest.GuestView{}
	for _, g := range m.guests {
		v := m.view(g)
		if g.EventID != eventID || (status != nil && v.RSVP.Status != *status) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memGuests) Update(_ context.Context, g guest.Guest) (guest.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.guests[g.ID]; !ok {
		return guest.Guest{}, guest.ErrGuestNotFound
	}
	m.guests[g.ID] = g
	return g, nil
}

func (m *memGuests) Delete(_ context.Context, eventID, guestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guests[guestID]
	if !ok || g.EventID != eventID {
		return guest.ErrGuestNotFound
	}
	delete(m.guests, guestID)
	delete(m.rsvps, guestID)
	return nil
}

func (m *memGuests) FindByToken(_ context.Context, token string) (guest.GuestView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.guests {
		if g.InviteToken == token {
			return m.view(g), nil
		}
	}
	return guest.GuestView{}, guest.ErrInvitationNotFound
}

func (m *memGuests) SaveRSVP(_ context.Context, r guest.RSVP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rsvps[r.GuestID] = r
	return nil
}

type recordingFeed struct {
	frames map[string][][]byte
}

func (f *recordingFeed) Publish(eventID string, payload []byte) int {
	if f.frames == nil {
		f.frames = map[string][][]byte{}
	}
	f.frames[eventID] = append(f.frames[eventID], payload)
	return 1
}

type oneEvent event.Event

func (e oneEvent) Get(_ context.Context, id string) (event.Event, error) {
	if id != e.ID {
		return event.Event{}, event.ErrEventNotFound
	}
	return event.Event(e), nil
}

type fixture struct {
	repo  *memGuests
	cache *memory.Cache
	stats *RSVPStatsUseCase
	feed  *recordingFeed
}

func newFixture() *fixture {
	repo := newMemGuests()
	cache := memory.New()
	return &fixture{repo: repo, cache: cache, stats: NewRSVPStatsUseCase(repo, cache), feed: &recordingFeed{}}
}

func (f *fixture) add(t *testing.T, eventID, name string, invited int) *guest.GuestView {
	t.Helper()
	g, err := NewAddGuestUseCase(f.repo, f.stats).Execute(context.Background(), AddGuestInput{
		EventID: eventID,
		Draft:   guest.Draft{Name: name, InvitedCount: invited, Phone: "+972 54 000 0001"},
	})
	require.NoError(t, err)
	return g
}

func TestAddGuestStartsPending(t *testing.T) {
	f := newFixture()
	g := f.add(t, "ev-1", "Avi", 2)
	assert.Equal(t, guest.StatusPending, g.RSVP.Status)
	assert.Equal(t, "+972540000001", g.Phone)
	assert.NotEmpty(t, g.InviteToken)
}

func TestImportGuestsReportsBadRows(t *testing.T) {
	f := newFixture()
	res, err := NewImportGuestsUseCase(f.repo, f.stats).Execute(context.Background(), ImportGuestsInput{
		EventID: "ev-1",
		Rows: []guest.Draft{
			{Name: "Avi", Phone: "+972541111111"},
			{Name: "", Phone: "+972542222222"},
			{Name: "Dana", Phone: "12"},
			{Name: "Noa", InvitedCount: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, 2, res.Errors[1].Index)

	_, err = NewImportGuestsUseCase(f.repo, f.stats).Execute(context.Background(), ImportGuestsInput{EventID: "ev-1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSubmitRSVPInvalidatesCacheAndPublishes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	g := f.add(t, "ev-1", "Avi", 3)
	f.add(t, "ev-1", "Dana", 1)

	before, err := f.stats.Execute(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, 2, before.Pending)

	submit := NewSubmitRSVPUseCase(f.repo, f.stats, f.feed)
	got, err := submit.Execute(ctx, SubmitRSVPInput{Token: g.InviteToken, Answer: guest.Answer{Status: guest.StatusAccepted, PartySize: 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, got.RSVP.PartySize)

	after, err := f.stats.Execute(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, 1, after.Accepted)
	assert.Equal(t, 2, after.Attending)
	assert.Equal(t, 1, after.Pending)

	require.Len(t, f.feed.frames["ev-1"], 1)
	var frame guest.RSVPUpdate
	require.NoError(t, json.Unmarshal(f.feed.frames["ev-1"][0], &frame))
	assert.Equal(t, "rsvp", frame.Type)
	assert.Equal(t, guest.StatusAccepted, frame.Status)
	assert.Equal(t, 2, frame.Stats.Attending)

	// changing the answer is allowed
	got, err = submit.Execute(ctx, SubmitRSVPInput{Token: g.InviteToken, Answer: guest.Answer{Status: guest.StatusDeclined, PartySize: 2}})
	require.NoError(t, err)
	assert.Zero(t, got.RSVP.PartySize)
}

func TestSubmitRSVPRejectsInvalidAnswers(t *testing.T) {
	f := newFixture()
	g := f.add(t, "ev-1", "Avi", 2)
	submit := NewSubmitRSVPUseCase(f.repo, f.stats, f.feed)
	ctx := context.Background()

	_, err := submit.Execute(ctx, SubmitRSVPInput{Token: g.InviteToken, Answer: guest.Answer{Status: guest.StatusAccepted, PartySize: 3}})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = submit.Execute(ctx, SubmitRSVPInput{Token: g.InviteToken, Answer: guest.Answer{Status: guest.StatusPending}})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = submit.Execute(ctx, SubmitRSVPInput{Token: "unknown", Answer: guest.Answer{Status: guest.StatusDeclined}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, f.feed.frames)
}

func TestStatsAreCached(t *testing.T) {
	f := newFixture()
	f.add(t, "ev-1", "Avi", 1)
	ctx := context.Background()

	_, err := f.stats.Execute(ctx, "ev-1")
	require.NoError(t, err)
	_, err = f.stats.Execute(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.lists)

	_, err = f.cache.Get(ctx, StatsKey("ev-1"))
	assert.NoError(t, err)
}

func TestSetRSVPFullParty(t *testing.T) {
	f := newFixture()
	g := f.add(t, "ev-1", "Avi", 4)
	got, err := NewSetRSVPUseCase(f.repo, f.stats, nil).Execute(context.Background(), SetRSVPInput{
		EventID: "ev-1", GuestID: g.ID, Answer: guest.Answer{Status: guest.StatusAccepted}, FullParty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.RSVP.PartySize)

	_, err = NewSetRSVPUseCase(f.repo, f.stats, nil).Execute(context.Background(), SetRSVPInput{
		EventID: "ev-2", GuestID: g.ID, Answer: guest.Answer{Status: guest.StatusDeclined},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetInvitation(t *testing.T) {
	f := newFixture()
	g := f.add(t, "ev-1", "Avi", 2)
	date := time.Date(2026, 9, 3, 17, 0, 0, 0, time.UTC)
	uc := NewGetInvitationUseCase(f.repo, oneEvent{ID: "ev-1", Title: "Noa & Dan", EventDate: &date, Venue: "Garden"})

	inv, err := uc.Execute(context.Background(), g.InviteToken)
	require.NoError(t, err)
	assert.Equal(t, "Avi", inv.GuestName)
	assert.Equal(t, "Noa & Dan", inv.EventTitle)
	assert.Equal(t, guest.StatusPending, inv.RSVP.Status)

	_, err = uc.Execute(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAndRemoveGuest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	g := f.add(t, "ev-1", "Avi", 3)
	_, err := NewSetRSVPUseCase(f.repo, f.stats, nil).Execute(ctx, SetRSVPInput{EventID: "ev-1", GuestID: g.ID, Answer: guest.Answer{Status: guest.StatusAccepted, PartySize: 3}})
	require.NoError(t, err)

	two := 2
	_, err = NewUpdateGuestUseCase(f.repo, f.stats).Execute(ctx, UpdateGuestInput{EventID: "ev-1", GuestID: g.ID, Patch: guest.Patch{InvitedCount: &two}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	name := "Avi Levi"
	updated, err := NewUpdateGuestUseCase(f.repo, f.stats).Execute(ctx, UpdateGuestInput{EventID: "ev-1", GuestID: g.ID, Patch: guest.Patch{Name: &name}})
	require.NoError(t, err)
	assert.Equal(t, "Avi Levi", updated.Name)

	require.NoError(t, NewRemoveGuestUseCase(f.repo, f.stats).Execute(ctx, RemoveGuestInput{EventID: "ev-1", GuestID: g.ID}))
	err = NewRemoveGuestUseCase(f.repo, f.stats).Execute(ctx, RemoveGuestInput{EventID: "ev-1", GuestID: g.ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := NewListGuestsUseCase(f.repo).Execute(ctx, ListGuestsInput{EventID: "ev-1"})
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = NewListGuestsUseCase(f.repo).Execute(ctx, ListGuestsInput{EventID: "ev-1", Status: "maybe"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
