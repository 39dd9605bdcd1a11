package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	eventAdapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	"go-wedding/internal/pkg/guest/application/usecase"
	"go-wedding/internal/pkg/guest/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

// GetInvitationController handles the public GET /invitations/:token.
type GetInvitationController struct {
	UC *usecase.GetInvitationUseCase
}

func NewGetInvitationController(pool *pgxpool.Pool) *GetInvitationController {
	return &GetInvitationController{UC: usecase.NewGetInvitationUseCase(
		adapter.NewPgGuestRepository(pool),
		eventAdapter.NewPgEventRepository(pool),
	)}
}

func (h *GetInvitationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		inv, err := h.UC.Execute(ctx, c.Param("token"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"guest_name":    inv.GuestName,
			"invited_count": inv.InvitedCount,
			"rsvp":          toRSVP(inv.RSVP),
			"event": gin.H{
				"title":     inv.EventTitle,
				"date":      inv.EventDate,
				"venue":     inv.Venue,
				"address":   inv.Address,
				"image_url": inv.ImageURL,
			},
		})
	}
}

// SubmitRSVPController handles the public POST /invitations/:token/rsvp.
type SubmitRSVPController struct {
	UC *usecase.SubmitRSVPUseCase
}

func NewSubmitRSVPController(pool *pgxpool.Pool, cache cacheport.Cache, feed usecase.Publisher) *SubmitRSVPController {
	repo := adapter.NewPgGuestRepository(pool)
	return &SubmitRSVPController{UC: usecase.NewSubmitRSVPUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache), feed)}
}

func (h *SubmitRSVPController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req answerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		g, err := h.UC.Execute(ctx, usecase.SubmitRSVPInput{Token: c.Param("token"), Answer: req.answer()})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rsvp": toRSVP(g.RSVP)})
	}
}

// SetRSVPController handles the planner override PUT /events/:eventId/guests/:guestId/rsvp.
type SetRSVPController struct {
	UC *usecase.SetRSVPUseCase
}

func NewSetRSVPController(pool *pgxpool.Pool, cache cacheport.Cache, feed usecase.Publisher) *SetRSVPController {
	repo := adapter.NewPgGuestRepository(pool)
	return &SetRSVPController{UC: usecase.NewSetRSVPUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache), feed)}
}

func (h *SetRSVPController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req answerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		g, err := h.UC.Execute(ctx, usecase.SetRSVPInput{
			EventID: c.Param("eventId"),
			GuestID: c.Param("guestId"),
			Answer:  req.answer(),
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*g))
	}
}

// RSVPStatsController handles GET /events/:eventId/rsvp/stats.
type RSVPStatsController struct {
	UC *usecase.RSVPStatsUseCase
}

func NewRSVPStatsController(pool *pgxpool.Pool, cache cacheport.Cache) *RSVPStatsController {
	return &RSVPStatsController{UC: usecase.NewRSVPStatsUseCase(adapter.NewPgGuestRepository(pool), cache)}
}

func (h *RSVPStatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		s, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
