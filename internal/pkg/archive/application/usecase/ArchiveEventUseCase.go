package usecase

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"go-wedding/internal/infrastructure/storage/port"
	"go-wedding/internal/logging"
	archive "go-wedding/internal/pkg/archive/application/domain"
	repository "go-wedding/internal/pkg/archive/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// ArchiveEventUseCase snapshots an event to object storage and then deletes it.
type ArchiveEventUseCase struct {
	Repo    repository.ArchiveRepository
	Sources Sources
	Store   port.ObjectStore
	Rooms   Rooms
	Now     func() time.Time
}

func NewArchiveEventUseCase(repo repository.ArchiveRepository, src Sources, store port.ObjectStore, rooms Rooms) *ArchiveEventUseCase {
	return &ArchiveEventUseCase{Repo: repo, Sources: src, Store: store, Rooms: rooms, Now: time.Now}
}

func (uc *ArchiveEventUseCase) Execute(ctx context.Context, eventID string) (*archive.Archive, error) {
	now := uc.Now().UTC()
	snap, err := uc.snapshot(ctx, eventID, now)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	key := archive.ObjectKey(snap.Event.WorkspaceID, eventID, now)
	if _, err := uc.Store.Put(ctx, key, body, "application/json"); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("event_id", eventID).Str("key", key).Msg("archive upload failed")
		return nil, apperr.New(apperr.ErrUnavailable, "archive: snapshot upload failed")
	}

	a, err := uc.Repo.Commit(ctx, archive.Archive{
		WorkspaceID: snap.Event.WorkspaceID,
		EventID:     eventID,
		EventTitle:  snap.Event.Title,
		ObjectKey:   key,
		SizeBytes:   int64(len(body)),
		ArchivedAt:  now,
	})
	if err != nil {
		if derr := uc.Store.Delete(ctx, key); derr != nil {
			logging.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("orphaned archive object")
		}
		return nil, apperr.FromRepository(err)
	}

	if uc.Rooms != nil {
		uc.Rooms.CloseRoom(eventID)
	}
	if img := snap.Event.InvitationImageKey; img != "" {
		if err := uc.Store.Delete(ctx, img); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", img).Msg("invitation image not removed")
		}
	}
	logging.Ctx(ctx).Info().
		Str("event_id", eventID).
		Str("archive_id", a.ID).
		Int64("size_bytes", a.SizeBytes).
		Msg("event archived")
	return &a, nil
}

func (uc *ArchiveEventUseCase) snapshot(ctx context.Context, eventID string, at time.Time) (*archive.Snapshot, error) {
	ev, err := uc.Sources.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	snap := &archive.Snapshot{Version: archive.SnapshotVersion, ArchivedAt: at, Event: ev}
	if snap.Guests, err = uc.Sources.Guests.List(ctx, eventID, nil); err != nil {
		return nil, err
	}
	if snap.Tables, err = uc.Sources.Tables.ListTables(ctx, eventID); err != nil {
		return nil, err
	}
	if snap.Suppliers, err = uc.Sources.Suppliers.List(ctx, eventID); err != nil {
		return nil, err
	}
	if snap.Jobs, err = uc.Sources.Messaging.ListJobs(ctx, eventID); err != nil {
		return nil, err
	}
	if snap.Messages, err = uc.Sources.Messaging.EventMessages(ctx, eventID); err != nil {
		return nil, err
	}
	if snap.CostLogs, err = uc.Sources.Messaging.EventCosts(ctx, eventID); err != nil {
		return nil, err
	}
	return snap, nil
}
