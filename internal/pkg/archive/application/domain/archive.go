package archive

import (
	"fmt"
	"time"

	event "go-wedding/internal/pkg/event/application/domain"
	guest "go-wedding/internal/pkg/guest/application/domain"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
)

var ErrArchiveNotFound = apperr.New(apperr.ErrNotFound, "archive: not found")

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is everything known about an event at the moment it was archived.
type Snapshot struct {
	Version    int
	ArchivedAt time.Time
	Event      event.Event
	Guests     []guest.GuestView
	Tables     []seating.Table
	Suppliers  []supplier.Supplier
	Jobs       []messaging.Job
	Messages   []messaging.Message
	CostLogs   []messaging.CostLog
}

// Archive records where an archived event's snapshot lives.
type Archive struct {
	ID          string    `db:"id"`
	WorkspaceID string    `db:"workspace_id"`
	EventID     string    `db:"event_id"`
	EventTitle  string    `db:"event_title"`
	ObjectKey   string    `db:"object_key"`
	SizeBytes   int64     `db:"size_bytes"`
	ArchivedAt  time.Time `db:"archived_at"`
}

// ObjectKey is the storage key of a snapshot.
func ObjectKey(workspaceID, eventID string, at time.Time) string {
	return fmt.Sprintf("archives/%s/%s/%d.json", workspaceID, eventID, at.Unix())
}
