package controller

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	imagegen "go-wedding/internal/infrastructure/imagegen/port"
	storage "go-wedding/internal/infrastructure/storage/port"
	eventadapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	invitation "go-wedding/internal/pkg/invitation/application/domain"
	"go-wedding/internal/pkg/invitation/application/usecase"
	messagingadapter "go-wedding/internal/pkg/messaging/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

// GenerateInvitationController handles POST /events/:eventId/invitation, a
// multipart form with a "prompt" field and an "image" file.
type GenerateInvitationController struct {
	UC *usecase.GenerateInvitationUseCase
}

func NewGenerateInvitationController(pool *pgxpool.Pool, editor imagegen.Editor, store storage.ObjectStore, costMicros int64) *GenerateInvitationController {
	return &GenerateInvitationController{UC: usecase.NewGenerateInvitationUseCase(
		eventadapter.NewPgEventRepository(pool),
		editor,
		store,
		messagingadapter.NewPgMessagingRepository(pool),
		costMicros,
	)}
}

func (h *GenerateInvitationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if fh.Size > invitation.MaxImageBytes {
			apperr.Respond(c, apperr.Validation("invitation: base image exceeds 8 MiB"))
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		img, err := io.ReadAll(io.LimitReader(f, invitation.MaxImageBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Minute)
		defer cancel()
		ev, err := h.UC.Execute(ctx, usecase.GenerateInvitationInput{
			EventID:   c.Param("eventId"),
			Prompt:    c.PostForm("prompt"),
			BaseImage: img,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"event_id":             ev.ID,
			"invitation_image_url": ev.InvitationImageURL,
		})
	}
}
