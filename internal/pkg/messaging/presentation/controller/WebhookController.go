package controller

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tidwall/gjson"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	"go-wedding/internal/logging"
	guestusecase "go-wedding/internal/pkg/guest/application/usecase"
	guestadapter "go-wedding/internal/pkg/guest/persistence/repository/adapter"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/messaging/application/usecase"
	"go-wedding/internal/pkg/messaging/persistence/repository/adapter"
	"go-wedding/internal/pkg/platform/apperr"
)

const maxWebhookBody = 1 << 20

// WebhookConfig holds the secrets used to authenticate provider callbacks.
// Empty secrets disable the corresponding check.
type WebhookConfig struct {
	TwilioAuthToken string
	// TwilioCallbackURL is the public URL Twilio signs; empty derives it from
	// PublicBaseURL and the request path.
	TwilioCallbackURL   string
	PublicBaseURL       string
	WhatsAppVerifyToken string
	WhatsAppAppSecret   string
}

// twilioStatus maps Twilio message and call states onto message statuses.
func twilioStatus(s string) (messaging.MessageStatus, bool) {
	switch strings.ToLower(s) {
	case "queued", "accepted", "sending", "sent", "initiated", "ringing", "in-progress":
		return messaging.MessageSent, true
	case "delivered", "completed":
		return messaging.MessageDelivered, true
	case "read":
		return messaging.MessageRead, true
	case "failed", "undelivered", "busy", "no-answer", "canceled":
		return messaging.MessageFailed, true
	}
	return "", false
}

// StatusRecorder applies one provider delivery callback.
type StatusRecorder interface {
	Execute(ctx context.Context, in usecase.RecordStatusInput) (bool, error)
}

// ReplyHandler applies one RSVP button reply.
type ReplyHandler interface {
	Execute(ctx context.Context, in usecase.HandleReplyInput) (bool, error)
}

// TwilioStatusController handles POST /webhooks/twilio/status.
type TwilioStatusController struct {
	UC  StatusRecorder
	Cfg WebhookConfig
}

func NewTwilioStatusController(pool *pgxpool.Pool, cfg WebhookConfig) *TwilioStatusController {
	return &TwilioStatusController{UC: usecase.NewRecordStatusUseCase(adapter.NewPgMessagingRepository(pool)), Cfg: cfg}
}

func (h *TwilioStatusController) callbackURL(c *gin.Context) string {
	if h.Cfg.TwilioCallbackURL != "" {
		return h.Cfg.TwilioCallbackURL
	}
	return strings.TrimRight(h.Cfg.PublicBaseURL, "/") + c.Request.URL.RequestURI()
}

func (h *TwilioStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
			return
		}
		form := c.Request.PostForm
		if h.Cfg.TwilioAuthToken != "" &&
			!validTwilioSignature(h.Cfg.TwilioAuthToken, h.callbackURL(c), form, c.GetHeader("X-Twilio-Signature")) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}

		sid := form.Get("MessageSid")
		state := form.Get("MessageStatus")
		if sid == "" {
			sid = form.Get("CallSid")
			state = form.Get("CallStatus")
		}
		status, ok := twilioStatus(state)
		if sid == "" || !ok {
			c.Status(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		_, err := h.UC.Execute(ctx, usecase.RecordStatusInput{ProviderMessageID: sid, Status: status, Error: form.Get("ErrorCode")})
		if err != nil {
			// Twilio retries on 5xx; the status is reapplied idempotently.
			logging.Ctx(ctx).Error().Err(err).Str("sid", sid).Msg("record twilio status")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// WhatsAppVerifyController handles GET /webhooks/whatsapp, the subscription handshake.
type WhatsAppVerifyController struct {
	Cfg WebhookConfig
}

func NewWhatsAppVerifyController(cfg WebhookConfig) *WhatsAppVerifyController {
	return &WhatsAppVerifyController{Cfg: cfg}
}

func (h *WhatsAppVerifyController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("hub.mode") != "subscribe" || h.Cfg.WhatsAppVerifyToken == "" ||
			c.Query("hub.verify_token") != h.Cfg.WhatsAppVerifyToken {
			c.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
			return
		}
		c.String(http.StatusOK, c.Query("hub.challenge"))
	}
}

// WhatsAppWebhookController handles POST /webhooks/whatsapp: delivery statuses
// and RSVP button replies.
type WhatsAppWebhookController struct {
	Status StatusRecorder
	Reply  ReplyHandler
	Cfg    WebhookConfig
}

func NewWhatsAppWebhookController(pool *pgxpool.Pool, cache cacheport.Cache, feed guestusecase.Publisher, cfg WebhookConfig) *WhatsAppWebhookController {
	repo := adapter.NewPgMessagingRepository(pool)
	guests := guestadapter.NewPgGuestRepository(pool)
	rsvp := guestusecase.NewSetRSVPUseCase(guests, guestusecase.NewRSVPStatsUseCase(guests, cache), feed)
	return &WhatsAppWebhookController{
		Status: usecase.NewRecordStatusUseCase(repo),
		Reply:  usecase.NewHandleReplyUseCase(repo, rsvp),
		Cfg:    cfg,
	}
}

var whatsAppStatuses = map[string]messaging.MessageStatus{
	"sent":      messaging.MessageSent,
	"delivered": messaging.MessageDelivered,
	"read":      messaging.MessageRead,
	"failed":    messaging.MessageFailed,
}

// replyPayload extracts the button id from a button or interactive message.
func replyPayload(msg gjson.Result) string {
	switch msg.Get("type").String() {
	case "button":
		return msg.Get("button.payload").String()
	case "interactive":
		return msg.Get("interactive.button_reply.id").String()
	}
	return ""
}

func (h *WhatsAppWebhookController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		if h.Cfg.WhatsAppAppSecret != "" && !validMetaSignature(h.Cfg.WhatsAppAppSecret, body, c.GetHeader("X-Hub-Signature-256")) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}
		if !gjson.ValidBytes(body) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		log := logging.Ctx(ctx)

		var failed bool
		gjson.GetBytes(body, "entry.#.changes.#.value").ForEach(func(_, values gjson.Result) bool {
			values.ForEach(func(_, value gjson.Result) bool {
				value.Get("statuses").ForEach(func(_, st gjson.Result) bool {
					status, ok := whatsAppStatuses[st.Get("status").String()]
					if !ok {
						return true
					}
					_, err := h.Status.Execute(ctx, usecase.RecordStatusInput{
						ProviderMessageID: st.Get("id").String(),
						Status:            status,
						Error:             st.Get("errors.0.title").String(),
					})
					if err != nil {
						log.Error().Err(err).Str("provider_message_id", st.Get("id").String()).Msg("record whatsapp status")
						failed = failed || apperr.Status(err) >= http.StatusInternalServerError
					}
					return true
				})
				value.Get("messages").ForEach(func(_, msg gjson.Result) bool {
					payload := replyPayload(msg)
					if payload == "" {
						return true
					}
					_, err := h.Reply.Execute(ctx, usecase.HandleReplyInput{
						ContextMessageID: msg.Get("context.id").String(),
						Payload:          payload,
					})
					if err != nil {
						log.Error().Err(err).Str("from", msg.Get("from").String()).Msg("handle whatsapp reply")
						failed = failed || apperr.Status(err) >= http.StatusInternalServerError
					}
					return true
				})
				return true
			})
			return true
		})
		// a 5xx makes Meta redeliver; replays are idempotent
		if failed {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusOK)
	}
}
