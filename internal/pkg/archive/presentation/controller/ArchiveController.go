package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/infrastructure/storage/port"
	archive "go-wedding/internal/pkg/archive/application/domain"
	"go-wedding/internal/pkg/archive/application/usecase"
	"go-wedding/internal/pkg/archive/persistence/repository/adapter"
	eventadapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	guestadapter "go-wedding/internal/pkg/guest/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	messagingadapter "go-wedding/internal/pkg/messaging/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
	seatingadapter "go-wedding/internal/pkg/seating/persistence/repository/adapter"
	supplieradapter "go-wedding/internal/pkg/supplier/persistence/repository/adapter"
)

type archiveResponse struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	ObjectKey  string    `json:"object_key"`
	SizeBytes  int64     `json:"size_bytes"`
	ArchivedAt time.Time `json:"archived_at"`
}

func toResponse(a archive.Archive) archiveResponse {
	return archiveResponse{
		ID:         a.ID,
		EventID:    a.EventID,
		EventTitle: a.EventTitle,
		ObjectKey:  a.ObjectKey,
		SizeBytes:  a.SizeBytes,
		ArchivedAt: a.ArchivedAt,
	}
}

// ArchiveEventController handles DELETE /events/:eventId.
type ArchiveEventController struct {
	UC *usecase.ArchiveEventUseCase
}

func NewArchiveEventController(pool *pgxpool.Pool, store port.ObjectStore, rooms usecase.Rooms) *ArchiveEventController {
	src := usecase.Sources{
		Events:    eventadapter.NewPgEventRepository(pool),
		Guests:    guestadapter.NewPgGuestRepository(pool),
		Tables:    seatingadapter.NewPgSeatingRepository(pool),
		Suppliers: supplieradapter.NewPgSupplierRepository(pool),
		Messaging: messagingadapter.NewPgMessagingRepository(pool),
	}
	return &ArchiveEventController{UC: usecase.NewArchiveEventUseCase(adapter.NewPgArchiveRepository(pool), src, store, rooms)}
}

func (h *ArchiveEventController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		a, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*a))
	}
}

// ListArchivesController handles GET /workspaces/:workspaceId/archives.
type ListArchivesController struct {
	UC *usecase.ListArchivesUseCase
}

func NewListArchivesController(pool *pgxpool.Pool) *ListArchivesController {
	return &ListArchivesController{UC: usecase.NewListArchivesUseCase(adapter.NewPgArchiveRepository(pool))}
}

func (h *ListArchivesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		list, err := h.UC.Execute(ctx, middleware.WorkspaceID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]archiveResponse, 0, len(list))
		for _, a := range list {
			out = append(out, toResponse(a))
		}
		c.JSON(http.StatusOK, gin.H{"archives": out})
	}
}

// DownloadArchiveController handles GET /workspaces/:workspaceId/archives/:archiveId.
type DownloadArchiveController struct {
	UC *usecase.DownloadArchiveUseCase
}

func NewDownloadArchiveController(pool *pgxpool.Pool, store port.ObjectStore) *DownloadArchiveController {
	return &DownloadArchiveController{UC: usecase.NewDownloadArchiveUseCase(adapter.NewPgArchiveRepository(pool), store)}
}

func (h *DownloadArchiveController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()
		a, body, err := h.UC.Execute(ctx, usecase.DownloadArchiveInput{
			WorkspaceID: middleware.WorkspaceID(c),
			ArchiveID:   c.Param("archiveId"),
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%s.json"`, a.EventID))
		c.Data(http.StatusOK, "application/json", body)
	}
}
