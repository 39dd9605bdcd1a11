package repository

import (
	"context"

	archive "go-wedding/internal/pkg/archive/application/domain"
)

// ArchiveRepository records archived events.
type ArchiveRepository interface {
	// Commit inserts the archive row and deletes the event in one transaction.
	// The event's dependent rows go with it through ON DELETE CASCADE.
	Commit(ctx context.Context, a archive.Archive) (archive.Archive, error)
	List(ctx context.Context, workspaceID string) ([]archive.Archive, error)
	Get(ctx context.Context, workspaceID, archiveID string) (archive.Archive, error)
}
