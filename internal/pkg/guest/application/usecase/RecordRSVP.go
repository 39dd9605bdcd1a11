package usecase

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"go-wedding/internal/logging"
	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// rsvpRecorder stores an answer and tells the event's live dashboard about it.
// Guests submitting through their link and planners overriding share it.
type rsvpRecorder struct {
	repo  repository.GuestRepository
	stats *RSVPStatsUseCase
	feed  Publisher
	now   func() time.Time
}

func (r rsvpRecorder) record(ctx context.Context, g guest.GuestView, a guest.Answer) (*guest.GuestView, error) {
	rsvp, err := a.Resolve(g.Guest, r.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := r.repo.SaveRSVP(ctx, rsvp); err != nil {
		return nil, apperr.FromRepository(err)
	}
	g.RSVP = rsvp

	r.stats.Invalidate(ctx, g.EventID)
	if r.feed != nil {
		r.publish(ctx, g)
	}
	return &g, nil
}

func (r rsvpRecorder) publish(ctx context.Context, g guest.GuestView) {
	stats, err := r.stats.Execute(ctx, g.EventID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event_id", g.EventID).Msg("rsvp stats unavailable for live update")
	}
	payload, err := json.Marshal(guest.RSVPUpdate{
		Type:      "rsvp",
		EventID:   g.EventID,
		GuestID:   g.ID,
		GuestName: g.Name,
		Status:    g.RSVP.Status,
		PartySize: g.RSVP.PartySize,
		Stats:     stats,
	})
	if err != nil {
		return
	}
	r.feed.Publish(g.EventID, payload)
}
