package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	"go-wedding/internal/pkg/seating/application/usecase"
	"go-wedding/internal/pkg/seating/persistence/repository/adapter"
)

type tableResponse struct {
	ID        string                `json:"id"`
	EventID   string                `json:"event_id"`
	Name      string                `json:"name"`
	Shape     seating.Shape         `json:"shape"`
	Capacity  int                   `json:"capacity"`
	X         float64               `json:"x"`
	Y         float64               `json:"y"`
	Rotation  float64               `json:"rotation"`
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Occupied  int                   `json:"occupied"`
	Seats     []seating.Seat        `json:"seats"`
	Guests    []seating.SeatedGuest `json:"guests"`
	CreatedAt time.Time             `json:"created_at"`
}

func toResponse(l seating.Layout) tableResponse {
	guests := l.Guests
	if guests == nil {
		guests = []seating.SeatedGuest{}
	}
	return tableResponse{
		ID:        l.ID,
		EventID:   l.EventID,
		Name:      l.Name,
		Shape:     l.Shape,
		Capacity:  l.Capacity,
		X:         l.X,
		Y:         l.Y,
		Rotation:  l.Rotation,
		Width:     l.Width,
		Height:    l.Height,
		Occupied:  l.Occupied,
		Seats:     l.Seats,
		Guests:    guests,
		CreatedAt: l.CreatedAt,
	}
}

// CreateTableController handles POST /events/:eventId/tables.
type CreateTableController struct {
	UC *usecase.CreateTableUseCase
}

func NewCreateTableController(pool *pgxpool.Pool) *CreateTableController {
	return &CreateTableController{UC: usecase.NewCreateTableUseCase(adapter.NewPgSeatingRepository(pool))}
}

type createTableRequest struct {
	Name     string  `json:"name" binding:"required"`
	Shape    string  `json:"shape" binding:"required,oneof=round rectangle square"`
	Capacity int     `json:"capacity" binding:"required,min=1,max=30"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

func (h *CreateTableController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		l, err := h.UC.Execute(ctx, usecase.CreateTableInput{
			EventID:  c.Param("eventId"),
			Name:     req.Name,
			Shape:    req.Shape,
			Capacity: req.Capacity,
			X:        req.X,
			Y:        req.Y,
			Rotation: req.Rotation,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, toResponse(*l))
	}
}

// ListTablesController handles GET /events/:eventId/tables.
type ListTablesController struct {
	UC *usecase.ListTablesUseCase
}

func NewListTablesController(pool *pgxpool.Pool) *ListTablesController {
	return &ListTablesController{UC: usecase.NewListTablesUseCase(adapter.NewPgSeatingRepository(pool))}
}

func (h *ListTablesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		plan, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]tableResponse, 0, len(plan))
		for _, l := range plan {
			out = append(out, toResponse(l))
		}
		c.JSON(http.StatusOK, gin.H{"tables": out})
	}
}

// TableSeatsController handles GET /events/:eventId/tables/:tableId.
type TableSeatsController struct {
	UC *usecase.TableSeatsUseCase
}

func NewTableSeatsController(pool *pgxpool.Pool) *TableSeatsController {
	return &TableSeatsController{UC: usecase.NewTableSeatsUseCase(adapter.NewPgSeatingRepository(pool))}
}

func (h *TableSeatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		l, err := h.UC.Execute(ctx, usecase.TableSeatsInput{EventID: c.Param("eventId"), TableID: c.Param("tableId")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*l))
	}
}

// UpdateTableController handles PATCH /events/:eventId/tables/:tableId.
type UpdateTableController struct {
	UC *usecase.UpdateTableUseCase
}

func NewUpdateTableController(pool *pgxpool.Pool) *UpdateTableController {
	return &UpdateTableController{UC: usecase.NewUpdateTableUseCase(adapter.NewPgSeatingRepository(pool))}
}

type updateTableRequest struct {
	Name     *string  `json:"name"`
	Shape    *string  `json:"shape"`
	Capacity *int     `json:"capacity"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Rotation *float64 `json:"rotation"`
}

func (h *UpdateTableController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		l, err := h.UC.Execute(ctx, usecase.UpdateTableInput{
			EventID:  c.Param("eventId"),
			TableID:  c.Param("tableId"),
			Name:     req.Name,
			Shape:    req.Shape,
			Capacity: req.Capacity,
			X:        req.X,
			Y:        req.Y,
			Rotation: req.Rotation,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*l))
	}
}

// DeleteTableController handles DELETE /events/:eventId/tables/:tableId.
type DeleteTableController struct {
	UC *usecase.DeleteTableUseCase
}

func NewDeleteTableController(pool *pgxpool.Pool) *DeleteTableController {
	return &DeleteTableController{UC: usecase.NewDeleteTableUseCase(adapter.NewPgSeatingRepository(pool))}
}

func (h *DeleteTableController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.UC.Execute(ctx, usecase.DeleteTableInput{EventID: c.Param("eventId"), TableID: c.Param("tableId")}); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
