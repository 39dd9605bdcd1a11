package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	guest "go-wedding/internal/pkg/guest/application/domain"
	"go-wedding/internal/pkg/guest/application/usecase"
	"go-wedding/internal/pkg/guest/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

// AddGuestController handles POST /events/:eventId/guests.
type AddGuestController struct {
	UC *usecase.AddGuestUseCase
}

func NewAddGuestController(pool *pgxpool.Pool, cache cacheport.Cache) *AddGuestController {
	repo := adapter.NewPgGuestRepository(pool)
	return &AddGuestController{UC: usecase.NewAddGuestUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache))}
}

func (h *AddGuestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req guestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		g, err := h.UC.Execute(ctx, usecase.AddGuestInput{EventID: c.Param("eventId"), Draft: req.draft()})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, toResponse(*g))
	}
}

// ImportGuestsController handles POST /events/:eventId/guests/import.
type ImportGuestsController struct {
	UC *usecase.ImportGuestsUseCase
}

func NewImportGuestsController(pool *pgxpool.Pool, cache cacheport.Cache) *ImportGuestsController {
	repo := adapter.NewPgGuestRepository(pool)
	return &ImportGuestsController{UC: usecase.NewImportGuestsUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache))}
}

type importRow struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Group        string `json:"group"`
	InvitedCount int    `json:"invited_count"`
	Notes        string `json:"notes"`
}

type importRequest struct {
	Guests []importRow `json:"guests" binding:"required"`
}

func (h *ImportGuestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rows := make([]guest.Draft, 0, len(req.Guests))
		for _, r := range req.Guests {
			rows = append(rows, guest.Draft{Name: r.Name, Phone: r.Phone, Group: r.Group, InvitedCount: r.InvitedCount, Notes: r.Notes})
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.ImportGuestsInput{EventID: c.Param("eventId"), Rows: rows})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		created := make([]guestResponse, 0, len(res.Created))
		for _, g := range res.Created {
			created = append(created, toResponse(guest.GuestView{Guest: g, RSVP: guest.RSVP{GuestID: g.ID, Status: guest.StatusPending}}))
		}
		c.JSON(http.StatusOK, gin.H{"created": created, "errors": res.Errors})
	}
}

// ListGuestsController handles GET /events/:eventId/guests?status=.
type ListGuestsController struct {
	UC *usecase.ListGuestsUseCase
}

func NewListGuestsController(pool *pgxpool.Pool) *ListGuestsController {
	return &ListGuestsController{UC: usecase.NewListGuestsUseCase(adapter.NewPgGuestRepository(pool))}
}

func (h *ListGuestsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		list, err := h.UC.Execute(ctx, usecase.ListGuestsInput{EventID: c.Param("eventId"), Status: c.Query("status")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]guestResponse, 0, len(list))
		for _, g := range list {
			out = append(out, toResponse(g))
		}
		c.JSON(http.StatusOK, gin.H{"guests": out})
	}
}

// UpdateGuestController handles PATCH /events/:eventId/guests/:guestId.
type UpdateGuestController struct {
	UC *usecase.UpdateGuestUseCase
}

func NewUpdateGuestController(pool *pgxpool.Pool, cache cacheport.Cache) *UpdateGuestController {
	repo := adapter.NewPgGuestRepository(pool)
	return &UpdateGuestController{UC: usecase.NewUpdateGuestUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache))}
}

type updateGuestRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Group        *string `json:"group"`
	InvitedCount *int    `json:"invited_count"`
	Notes        *string `json:"notes"`
}

func (h *UpdateGuestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateGuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		g, err := h.UC.Execute(ctx, usecase.UpdateGuestInput{
			EventID: c.Param("eventId"),
			GuestID: c.Param("guestId"),
			Patch: guest.Patch{
				Name:         req.Name,
				Phone:        req.Phone,
				Group:        req.Group,
				InvitedCount: req.InvitedCount,
				Notes:        req.Notes,
			},
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*g))
	}
}

// RemoveGuestController handles DELETE /events/:eventId/guests/:guestId.
type RemoveGuestController struct {
	UC *usecase.RemoveGuestUseCase
}

func NewRemoveGuestController(pool *pgxpool.Pool, cache cacheport.Cache) *RemoveGuestController {
	repo := adapter.NewPgGuestRepository(pool)
	return &RemoveGuestController{UC: usecase.NewRemoveGuestUseCase(repo, usecase.NewRSVPStatsUseCase(repo, cache))}
}

func (h *RemoveGuestController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		err := h.UC.Execute(ctx, usecase.RemoveGuestInput{EventID: c.Param("eventId"), GuestID: c.Param("guestId")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
