package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	eventadapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	"go-wedding/internal/pkg/supplier/application/usecase"
	"go-wedding/internal/pkg/supplier/persistence/repository/adapter"
)

type supplierResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	AgreedCents int64     `json:"agreed_cents"`
	PaidCents   int64     `json:"paid_cents"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(s supplier.Supplier) supplierResponse {
	return supplierResponse{
		ID:          s.ID,
		EventID:     s.EventID,
		Name:        s.Name,
		Category:    s.Category,
		Phone:       s.Phone,
		Email:       s.Email,
		AgreedCents: s.AgreedCents,
		PaidCents:   s.PaidCents,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// AddSupplierController handles POST /events/:eventId/suppliers.
type AddSupplierController struct {
	UC *usecase.AddSupplierUseCase
}

func NewAddSupplierController(pool *pgxpool.Pool) *AddSupplierController {
	return &AddSupplierController{UC: usecase.NewAddSupplierUseCase(adapter.NewPgSupplierRepository(pool))}
}

type addSupplierRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Category    string `json:"category" binding:"max=60"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	AgreedCents int64  `json:"agreed_cents" binding:"min=0"`
	PaidCents   int64  `json:"paid_cents" binding:"min=0"`
	Notes       string `json:"notes" binding:"max=2000"`
}

func (h *AddSupplierController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		s, err := h.UC.Execute(ctx, supplier.Supplier{
			EventID:     c.Param("eventId"),
			Name:        req.Name,
			Category:    req.Category,
			Phone:       req.Phone,
			Email:       req.Email,
			AgreedCents: req.AgreedCents,
			PaidCents:   req.PaidCents,
			Notes:       req.Notes,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, toResponse(*s))
	}
}

// ListSuppliersController handles GET /events/:eventId/suppliers.
type ListSuppliersController struct {
	UC *usecase.ListSuppliersUseCase
}

func NewListSuppliersController(pool *pgxpool.Pool) *ListSuppliersController {
	return &ListSuppliersController{UC: usecase.NewListSuppliersUseCase(adapter.NewPgSupplierRepository(pool))}
}

func (h *ListSuppliersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		list, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]supplierResponse, 0, len(list))
		for _, s := range list {
			out = append(out, toResponse(s))
		}
		c.JSON(http.StatusOK, gin.H{"suppliers": out})
	}
}

// UpdateSupplierController handles PATCH /events/:eventId/suppliers/:supplierId.
type UpdateSupplierController struct {
	UC *usecase.UpdateSupplierUseCase
}

func NewUpdateSupplierController(pool *pgxpool.Pool) *UpdateSupplierController {
	return &UpdateSupplierController{UC: usecase.NewUpdateSupplierUseCase(adapter.NewPgSupplierRepository(pool))}
}

type updateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Category    *string `json:"category" binding:"omitempty,max=60"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	AgreedCents *int64  `json:"agreed_cents" binding:"omitempty,min=0"`
	PaidCents   *int64  `json:"paid_cents" binding:"omitempty,min=0"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}

func (h *UpdateSupplierController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		s, err := h.UC.Execute(ctx, usecase.UpdateSupplierInput{
			EventID:    c.Param("eventId"),
			SupplierID: c.Param("supplierId"),
			Patch: supplier.Patch{
				Name:        req.Name,
				Category:    req.Category,
				Phone:       req.Phone,
				Email:       req.Email,
				AgreedCents: req.AgreedCents,
				PaidCents:   req.PaidCents,
				Notes:       req.Notes,
			},
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*s))
	}
}

// RemoveSupplierController handles DELETE /events/:eventId/suppliers/:supplierId.
type RemoveSupplierController struct {
	UC *usecase.RemoveSupplierUseCase
}

func NewRemoveSupplierController(pool *pgxpool.Pool) *RemoveSupplierController {
	return &RemoveSupplierController{UC: usecase.NewRemoveSupplierUseCase(adapter.NewPgSupplierRepository(pool))}
}

func (h *RemoveSupplierController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		err := h.UC.Execute(ctx, usecase.RemoveSupplierInput{EventID: c.Param("eventId"), SupplierID: c.Param("supplierId")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// BudgetController handles GET /events/:eventId/budget.
type BudgetController struct {
	UC *usecase.BudgetSummaryUseCase
}

func NewBudgetController(pool *pgxpool.Pool) *BudgetController {
	return &BudgetController{UC: usecase.NewBudgetSummaryUseCase(
		adapter.NewPgSupplierRepository(pool),
		eventadapter.NewPgEventRepository(pool),
	)}
}

func (h *BudgetController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		b, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}
