package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/pkg/identity/application/usecase"
	"go-wedding/internal/pkg/identity/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	"go-wedding/internal/pkg/platform/apperr"
)

type CreateWorkspaceController struct {
	UC *usecase.CreateWorkspaceUseCase
}

func NewCreateWorkspaceController(pool *pgxpool.Pool) *CreateWorkspaceController {
	return &CreateWorkspaceController{UC: usecase.NewCreateWorkspaceUseCase(adapter.NewPgIdentityRepository(pool))}
}

type createWorkspaceRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CreateWorkspaceController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWorkspaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		ws, err := h.UC.Execute(ctx, usecase.CreateWorkspaceInput{UserID: middleware.UserID(c), Name: req.Name})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, workspaceJSON(ws.ID, ws.Name, ws.OwnerID, "owner", ws.CreatedAt))
	}
}

type ListWorkspacesController struct {
	UC *usecase.ListWorkspacesUseCase
}

func NewListWorkspacesController(pool *pgxpool.Pool) *ListWorkspacesController {
	return &ListWorkspacesController{UC: usecase.NewListWorkspacesUseCase(adapter.NewPgIdentityRepository(pool))}
}

func (h *ListWorkspacesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		list, err := h.UC.Execute(ctx, middleware.UserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]gin.H, 0, len(list))
		for _, w := range list {
			out = append(out, workspaceJSON(w.ID, w.Name, w.OwnerID, string(w.Role), w.CreatedAt))
		}
		c.JSON(http.StatusOK, gin.H{"workspaces": out})
	}
}

type AddMemberController struct {
	UC *usecase.AddMemberUseCase
}

func NewAddMemberController(pool *pgxpool.Pool) *AddMemberController {
	return &AddMemberController{UC: usecase.NewAddMemberUseCase(adapter.NewPgIdentityRepository(pool))}
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required,oneof=editor viewer"`
}

func (h *AddMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		m, err := h.UC.Execute(ctx, usecase.AddMemberInput{
			ActorID:     middleware.UserID(c),
			WorkspaceID: middleware.WorkspaceID(c),
			Email:       req.Email,
			Role:        req.Role,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user_id": m.UserID, "email": m.Email, "name": m.Name, "role": m.Role})
	}
}

type ListMembersController struct {
	UC *usecase.ListMembersUseCase
}

func NewListMembersController(pool *pgxpool.Pool) *ListMembersController {
	return &ListMembersController{UC: usecase.NewListMembersUseCase(adapter.NewPgIdentityRepository(pool))}
}

func (h *ListMembersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		members, err := h.UC.Execute(ctx, middleware.WorkspaceID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]gin.H, 0, len(members))
		for _, m := range members {
			out = append(out, gin.H{"user_id": m.UserID, "email": m.Email, "name": m.Name, "role": m.Role, "created_at": m.CreatedAt})
		}
		c.JSON(http.StatusOK, gin.H{"members": out})
	}
}
