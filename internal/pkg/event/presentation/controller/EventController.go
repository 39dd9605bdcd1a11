package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	event "go-wedding/internal/pkg/event/application/domain"
	"go-wedding/internal/pkg/event/application/usecase"
	"go-wedding/internal/pkg/event/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/platform/apperr"
)

type eventResponse struct {
	ID                 string     `json:"id"`
	WorkspaceID        string     `json:"workspace_id"`
	Title              string     `json:"title"`
	EventDate          *time.Time `json:"event_date"`
	Venue              string     `json:"venue"`
	Address            string     `json:"address"`
	BudgetCents        int64      `json:"budget_cents"`
	Notes              string     `json:"notes"`
	InvitationImageURL string     `json:"invitation_image_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toResponse(e event.Event) eventResponse {
	return eventResponse{
		ID:                 e.ID,
		WorkspaceID:        e.WorkspaceID,
		Title:              e.Title,
		EventDate:          e.EventDate,
		Venue:              e.Venue,
		Address:            e.Address,
		BudgetCents:        e.BudgetCents,
		Notes:              e.Notes,
		InvitationImageURL: e.InvitationImageURL,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// CreateEventController handles POST /workspaces/:workspaceId/events.
type CreateEventController struct {
	UC *usecase.CreateEventUseCase
}

func NewCreateEventController(pool *pgxpool.Pool) *CreateEventController {
	return &CreateEventController{UC: usecase.NewCreateEventUseCase(adapter.NewPgEventRepository(pool))}
}

type createEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	EventDate   *time.Time `json:"event_date"`
	Venue       string     `json:"venue"`
	Address     string     `json:"address"`
	BudgetCents int64      `json:"budget_cents" binding:"gte=0"`
	Notes       string     `json:"notes"`
}

func (h *CreateEventController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		e, err := h.UC.Execute(ctx, usecase.CreateEventInput{
			WorkspaceID: middleware.WorkspaceID(c),
			Title:       req.Title,
			EventDate:   req.EventDate,
			Venue:       req.Venue,
			Address:     req.Address,
			BudgetCents: req.BudgetCents,
			Notes:       req.Notes,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, toResponse(*e))
	}
}

// ListEventsController handles GET /workspaces/:workspaceId/events.
type ListEventsController struct {
	UC *usecase.ListEventsUseCase
}

func NewListEventsController(pool *pgxpool.Pool) *ListEventsController {
	return &ListEventsController{UC: usecase.NewListEventsUseCase(adapter.NewPgEventRepository(pool))}
}

func (h *ListEventsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		list, err := h.UC.Execute(ctx, middleware.WorkspaceID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]eventResponse, 0, len(list))
		for _, e := range list {
			out = append(out, toResponse(e))
		}
		c.JSON(http.StatusOK, gin.H{"events": out})
	}
}

// GetEventController handles GET /events/:eventId.
type GetEventController struct {
	UC *usecase.GetEventUseCase
}

func NewGetEventController(pool *pgxpool.Pool) *GetEventController {
	return &GetEventController{UC: usecase.NewGetEventUseCase(adapter.NewPgEventRepository(pool))}
}

func (h *GetEventController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		e, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*e))
	}
}

// UpdateEventController handles PATCH /events/:eventId.
type UpdateEventController struct {
	UC *usecase.UpdateEventUseCase
}

func NewUpdateEventController(pool *pgxpool.Pool) *UpdateEventController {
	return &UpdateEventController{UC: usecase.NewUpdateEventUseCase(adapter.NewPgEventRepository(pool))}
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	EventDate   *time.Time `json:"event_date"`
	ClearDate   bool       `json:"clear_date"`
	Venue       *string    `json:"venue"`
	Address     *string    `json:"address"`
	BudgetCents *int64     `json:"budget_cents"`
	Notes       *string    `json:"notes"`
}

func (h *UpdateEventController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		e, err := h.UC.Execute(ctx, usecase.UpdateEventInput{
			EventID: c.Param("eventId"),
			Patch: event.Patch{
				Title:       req.Title,
				EventDate:   req.EventDate,
				ClearDate:   req.ClearDate,
				Venue:       req.Venue,
				Address:     req.Address,
				BudgetCents: req.BudgetCents,
				Notes:       req.Notes,
			},
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*e))
	}
}
