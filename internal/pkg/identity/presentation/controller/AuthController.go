package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-wedding/internal/pkg/identity/application/session"
	"go-wedding/internal/pkg/identity/application/usecase"
	"go-wedding/internal/pkg/identity/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

// RegisterController handles sign-up.
type RegisterController struct {
	UC *usecase.RegisterUseCase
}

func NewRegisterController(pool *pgxpool.Pool, tokens *session.Issuer) *RegisterController {
	return &RegisterController{UC: usecase.NewRegisterUseCase(adapter.NewPgIdentityRepository(pool), tokens)}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// bcrypt dominates this request; give it more room than the usual 3s.
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.RegisterInput{Email: req.Email, Password: req.Password, Name: req.Name})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, authResponse(res))
	}
}

// LoginController exchanges credentials for a token.
type LoginController struct {
	UC *usecase.LoginUseCase
}

func NewLoginController(pool *pgxpool.Pool, tokens *session.Issuer) *LoginController {
	return &LoginController{UC: usecase.NewLoginUseCase(adapter.NewPgIdentityRepository(pool), tokens)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, authResponse(res))
	}
}

func authResponse(res *usecase.AuthResult) gin.H {
	out := gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user": gin.H{
			"id":         res.User.ID,
			"email":      res.User.Email,
			"name":       res.User.Name,
			"created_at": res.User.CreatedAt,
		},
	}
	if res.Workspace != nil {
		out["workspace"] = workspaceJSON(res.Workspace.ID, res.Workspace.Name, res.Workspace.OwnerID, "owner", res.Workspace.CreatedAt)
	}
	return out
}

func workspaceJSON(id, name, ownerID, role string, createdAt time.Time) gin.H {
	return gin.H{
		"id":         id,
		"name":       name,
		"owner_id":   ownerID,
		"role":       role,
		"created_at": createdAt,
	}
}
