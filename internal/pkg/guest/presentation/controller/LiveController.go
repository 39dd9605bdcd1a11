package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	"go-wedding/internal/infrastructure/realtime"
	"go-wedding/internal/logging"
	guest "go-wedding/internal/pkg/guest/application/domain"
	"go-wedding/internal/pkg/guest/application/usecase"
	"go-wedding/internal/pkg/guest/persistence/repository/adapter"
	"go-wedding/internal/pkg/identity/presentation/middleware"
)

// LiveController streams RSVP updates for one event over a websocket.
// Clients only listen; inbound frames other than control frames are ignored.
type LiveController struct {
	router      *realtime.Router
	statsUC     *usecase.RSVPStatsUseCase
	readTimeout time.Duration
}

func NewLiveController(pool *pgxpool.Pool, cache cacheport.Cache, router *realtime.Router) *LiveController {
	return &LiveController{
		router:      router,
		statsUC:     usecase.NewRSVPStatsUseCase(adapter.NewPgGuestRepository(pool), cache),
		readTimeout: 60 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Tokens travel in the query string, so origin adds nothing here.
		return true
	},
}

type connectedFrame struct {
	Type    string          `json:"type"`
	EventID string          `json:"event_id"`
	Stats   guest.RSVPStats `json:"stats"`
}

func (ctl *LiveController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("eventId")
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(middleware.UserID(c), ws)
		ctl.router.Attach(conn)
		ctl.router.Join(eventID, conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		stats, err := ctl.statsUC.Execute(ctx, eventID)
		cancel()
		if err != nil {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Str("event_id", eventID).Msg("live feed: initial stats unavailable")
		}
		if payload, err := json.Marshal(connectedFrame{Type: "connected", EventID: eventID, Stats: stats}); err == nil {
			_ = conn.Send(payload)
		}

		ws.SetReadLimit(4096)
		_ = ws.SetReadDeadline(time.Now().Add(ctl.readTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(ctl.readTimeout))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(ctl.readTimeout))
		}
	}
}
