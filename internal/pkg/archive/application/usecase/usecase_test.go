package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"go-wedding/internal/infrastructure/storage/memory"
	archive "go-wedding/internal/pkg/archive/application/domain"
	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
)

type memArchives struct {
	rows      []archive.Archive
	deleted   []string
	commitErr error
}

func (m *memArchives) Commit(_ context.Context, a archive.Archive) (archive.Archive, error) {
	if m.commitErr != nil {
		return archive.Archive{}, m.commitErr
	}
	a.ID = "arc-1"
	m.rows = append(m.rows, a)
	m.deleted = append(m.deleted, a.EventID)
	return a, nil
}

func (m *memArchives) List(_ context.Context, ws string) ([]archive.Archive, error) {
	var out []archive.Archive
	for _, a := range m.rows {
		if a.WorkspaceID == ws {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memArchives) Get(_ context.Context, ws, id string) (archive.Archive, error) {
	for _, a := range m.rows {
		if a.WorkspaceID == ws && a.ID == id {
			return a, nil
		}
	}
	return archive.Archive{}, archive.ErrArchiveNotFound
}

type fixture struct {
	events map[string]event.Event
}

func (f fixture) Get(_ context.Context, id string) (event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return e, nil
}

func (fixture) List(_ context.Context, eventID string, _ *guest.RSVPStatus) ([]guest.GuestView, error) {
	return []guest.GuestView{
		{Guest: guest.Guest{ID: "g1", EventID: eventID, Name: "Ana"}, RSVP: guest.RSVP{Status: guest.StatusAccepted, PartySize: 2}},
		{Guest: guest.Guest{ID: "g2", EventID: eventID, Name: "Bo"}, RSVP: guest.RSVP{Status: guest.StatusPending}},
	}, nil
}

func (fixture) ListTables(_ context.Context, eventID string) ([]seating.Table, error) {
	return []seating.Table{{ID: "t1", EventID: eventID, Name: "Family", Shape: seating.ShapeRound, Capacity: 10}}, nil
}

type suppliers struct{}

func (suppliers) List(_ context.Context, eventID string) ([]supplier.Supplier, error) {
	return []supplier.Supplier{{ID: "s1", EventID: eventID, Name: "Blooms"}}, nil
}

type history struct{}

func (history) ListJobs(_ context.Context, eventID string) ([]messaging.Job, error) {
	return []messaging.Job{{ID: "job-1", EventID: eventID, Status: messaging.JobCompleted, Total: 2, Sent: 2}}, nil
}

func (history) EventMessages(_ context.Context, eventID string) ([]messaging.Message, error) {
	return []messaging.Message{{ID: "m1", JobID: "job-1", EventID: eventID}, {ID: "m2", JobID: "job-1", EventID: eventID}}, nil
}

func (history) EventCosts(_ context.Context, eventID string) ([]messaging.CostLog, error) {
	return []messaging.CostLog{{ID: "c1", EventID: &eventID, Kind: messaging.CostMessage, AmountMicros: 5000}}, nil
}

type rooms struct{ closed []string }

func (r *rooms) CloseRoom(eventID string) { r.closed = append(r.closed, eventID) }

var archivedAt = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newHarness() (*ArchiveEventUseCase, *memArchives, *memory.Store, *rooms) {
	repo := &memArchives{}
	store := memory.New("https://cdn.test")
	r := &rooms{}
	ev := event.Event{ID: "e1", WorkspaceID: "w1", Title: "Noa & Dan", InvitationImageKey: "invitations/e1/a.png"}
	uc := NewArchiveEventUseCase(repo, Sources{
		Events:    fixture{events: map[string]event.Event{"e1": ev}},
		Guests:    fixture{},
		Tables:    fixture{},
		Suppliers: suppliers{},
		Messaging: history{},
	}, store, r)
	uc.Now = func() time.Time { return archivedAt }
	return uc, repo, store, r
}

func TestArchiveEventUploadsSnapshotThenDeletes(t *testing.T) {
	uc, repo, store, r := newHarness()
	ctx := context.Background()
	_, err := store.Put(ctx, "invitations/e1/a.png", []byte("png"), "image/png")
	require.NoError(t, err)

	a, err := uc.Execute(ctx, "e1")
	require.NoError(t, err)

	key := archive.ObjectKey("w1", "e1", archivedAt)
	assert.Equal(t, key, a.ObjectKey)
	assert.Equal(t, "Noa & Dan", a.EventTitle)
	assert.Equal(t, []string{"e1"}, repo.deleted)
	assert.Equal(t, []string{"e1"}, r.closed)

	obj, ok := store.Object(key)
	require.True(t, ok)
	assert.Equal(t, "application/json", obj.ContentType)
	assert.Equal(t, int64(len(obj.Body)), a.SizeBytes)

	doc := string(obj.Body)
	assert.Equal(t, int64(archive.SnapshotVersion), gjson.Get(doc, "Version").Int())
	assert.Equal(t, "Noa & Dan", gjson.Get(doc, "Event.Title").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "Guests.#").Int())
	assert.Equal(t, "accepted", gjson.Get(doc, "Guests.0.RSVP.Status").String())
	assert.Equal(t, int64(1), gjson.Get(doc, "Tables.#").Int())
	assert.Equal(t, "Blooms", gjson.Get(doc, "Suppliers.0.Name").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "Messages.#").Int())
	assert.Equal(t, int64(5000), gjson.Get(doc, "CostLogs.0.AmountMicros").Int())

	_, ok = store.Object("invitations/e1/a.png")
	assert.False(t, ok, "invitation image should be removed")
}

func TestArchiveEventUploadFailureLeavesEventUntouched(t *testing.T) {
	uc, repo, store, r := newHarness()
	store.PutErr = errors.New("s3 down")

	_, err := uc.Execute(context.Background(), "e1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, r.closed)
}

func TestArchiveEventCommitFailureRemovesUploadedObject(t *testing.T) {
	uc, repo, store, r := newHarness()
	repo.commitErr = errors.New("connection reset")

	_, err := uc.Execute(context.Background(), "e1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
	assert.Empty(t, store.Keys())
	assert.Empty(t, r.closed)
}

func TestArchiveEventUnknownEvent(t *testing.T) {
	uc, _, store, _ := newHarness()

	_, err := uc.Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, store.Keys())
}

func TestListAndDownloadArchives(t *testing.T) {
	uc, repo, store, _ := newHarness()
	ctx := context.Background()
	_, err := uc.Execute(ctx, "e1")
	require.NoError(t, err)

	list, err := NewListArchivesUseCase(repo).Execute(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	dl := NewDownloadArchiveUseCase(repo, store)
	a, body, err := dl.Execute(ctx, DownloadArchiveInput{WorkspaceID: "w1", ArchiveID: list[0].ID})
	require.NoError(t, err)
	assert.Equal(t, "e1", a.EventID)
	assert.Equal(t, "e1", gjson.GetBytes(body, "Event.ID").String())

	_, _, err = dl.Execute(ctx, DownloadArchiveInput{WorkspaceID: "w2", ArchiveID: list[0].ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, store.Delete(ctx, a.ObjectKey))
	_, _, err = dl.Execute(ctx, DownloadArchiveInput{WorkspaceID: "w1", ArchiveID: list[0].ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
