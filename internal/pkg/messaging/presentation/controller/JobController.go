package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	eventadapter "go-wedding/internal/pkg/event/persistence/repository/adapter"
	guestadapter "go-wedding/internal/pkg/guest/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/messaging/application/usecase"
	"go-wedding/internal/pkg/messaging/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

type jobResponse struct {
	ID          string              `json:"id"`
	EventID     string              `json:"event_id"`
	Channel     messaging.Channel   `json:"channel"`
	Template    string              `json:"template"`
	Audience    messaging.Audience  `json:"audience"`
	Status      messaging.JobStatus `json:"status"`
	Total       int                 `json:"total"`
	Sent        int                 `json:"sent"`
	Failed      int                 `json:"failed"`
	Skipped     int                 `json:"skipped"`
	Pending     int                 `json:"pending"`
	CreatedBy   string              `json:"created_by,omitempty"`
	ScheduledAt *time.Time          `json:"scheduled_at,omitempty"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	FinishedAt  *time.Time          `json:"finished_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Breakdown   messaging.Breakdown `json:"breakdown,omitempty"`
}

func toResponse(j messaging.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		EventID:     j.EventID,
		Channel:     j.Channel,
		Template:    j.Template,
		Audience:    j.Audience,
		Status:      j.Status,
		Total:       j.Total,
		Sent:        j.Sent,
		Failed:      j.Failed,
		Skipped:     j.Skipped,
		Pending:     j.Pending(),
		CreatedBy:   j.CreatedBy,
		ScheduledAt: j.ScheduledAt,
		StartedAt:   j.StartedAt,
		FinishedAt:  j.FinishedAt,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// CreateJobController handles POST /events/:eventId/messages/jobs.
type CreateJobController struct {
	UC *usecase.CreateJobUseCase
}

func NewCreateJobController(pool *pgxpool.Pool, queue usecase.Scheduler, publicBaseURL string) *CreateJobController {
	return &CreateJobController{UC: usecase.NewCreateJobUseCase(
		adapter.NewPgMessagingRepository(pool),
		eventadapter.NewPgEventRepository(pool),
		guestadapter.NewPgGuestRepository(pool),
		queue,
		publicBaseURL,
	)}
}

type createJobRequest struct {
	Channel     string     `json:"channel" binding:"required,oneof=whatsapp sms voice"`
	Template    string     `json:"template" binding:"required,max=1000"`
	Audience    string     `json:"audience" binding:"omitempty,oneof=all pending accepted declined"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

func (h *CreateJobController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// rendering a large guest list takes a moment longer than plain CRUD
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		job, err := h.UC.Execute(ctx, usecase.CreateJobInput{
			EventID:     c.Param("eventId"),
			CreatedBy:   middleware.UserID(c),
			Channel:     messaging.Channel(req.Channel),
			Template:    req.Template,
			Audience:    messaging.Audience(req.Audience),
			ScheduledAt: req.ScheduledAt,
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusAccepted, toResponse(*job))
	}
}

// ListJobsController handles GET /events/:eventId/messages/jobs.
type ListJobsController struct {
	UC *usecase.ListJobsUseCase
}

func NewListJobsController(pool *pgxpool.Pool) *ListJobsController {
	return &ListJobsController{UC: usecase.NewListJobsUseCase(adapter.NewPgMessagingRepository(pool))}
}

func (h *ListJobsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		jobs, err := h.UC.Execute(ctx, c.Param("eventId"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		out := make([]jobResponse, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, toResponse(j))
		}
		c.JSON(http.StatusOK, gin.H{"jobs": out})
	}
}

// GetJobController handles GET /events/:eventId/messages/jobs/:jobId.
type GetJobController struct {
	UC *usecase.GetJobUseCase
}

func NewGetJobController(pool *pgxpool.Pool) *GetJobController {
	return &GetJobController{UC: usecase.NewGetJobUseCase(adapter.NewPgMessagingRepository(pool))}
}

func (h *GetJobController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		detail, err := h.UC.Execute(ctx, usecase.GetJobInput{EventID: c.Param("eventId"), JobID: c.Param("jobId")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		resp := toResponse(detail.Job)
		resp.Breakdown = detail.Breakdown
		c.JSON(http.StatusOK, resp)
	}
}

// CancelJobController handles POST /events/:eventId/messages/jobs/:jobId/cancel.
type CancelJobController struct {
	UC *usecase.CancelJobUseCase
}

func NewCancelJobController(pool *pgxpool.Pool) *CancelJobController {
	return &CancelJobController{UC: usecase.NewCancelJobUseCase(adapter.NewPgMessagingRepository(pool))}
}

func (h *CancelJobController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		job, err := h.UC.Execute(ctx, usecase.CancelJobInput{EventID: c.Param("eventId"), JobID: c.Param("jobId")})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, toResponse(*job))
	}
}

// CostSummaryController handles GET /events/:eventId/costs.
type CostSummaryController struct {
	UC *usecase.CostSummaryUseCase
}

func NewCostSummaryController(pool *pgxpool.Pool) *CostSummaryController {
	return &CostSummaryController{UC: usecase.NewCostSummaryUseCase(adapter.NewPgMessagingRepository(pool))}
}

func (h *CostSummaryController) Handle() gin.HandlerFunc {
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
