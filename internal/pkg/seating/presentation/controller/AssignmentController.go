package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/pkg/platform/apperr"
	"go-wedding/internal/pkg/seating/application/usecase"
	"go-wedding/internal/pkg/seating/persistence/repository/adapter"
)

// AssignGuestController handles PUT /events/:eventId/tables/:tableId/guests/:guestId.
type AssignGuestController struct {
	UC *usecase.AssignGuestUseCase
}

func NewAssignGuestController(pool *pgxpool.Pool) *AssignGuestController {
	return &AssignGuestController{UC: usecase.NewAssignGuestUseCase(adapter.NewPgSeatingRepository(pool))}
}

func (h *AssignGuestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		err := h.UC.Execute(ctx, usecase.AssignGuestInput{
			EventID: c.Param("eventId"),
			TableID: c.Param("tableId"),
			GuestID: c.Param("guestId"),
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"guest_id": c.Param("guestId"), "table_id": c.Param("tableId")})
	}
}

// UnassignGuestController handles DELETE /events/:eventId/seating/guests/:guestId.
type UnassignGuestController struct {
	UC *usecase.UnassignGuestUseCase
}

func NewUnassignGuestController(pool *pgxpool.Pool) *UnassignGuestController {
	return &UnassignGuestController{UC: usecase.NewUnassignGuestUseCase(adapter.NewPgSeatingRepository(pool))}
}

func (h *UnassignGuestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.UC.Execute(ctx, usecase.UnassignGuestInput{EventID: c.Param("eventId"), GuestID: c.Param("guestId")}); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
