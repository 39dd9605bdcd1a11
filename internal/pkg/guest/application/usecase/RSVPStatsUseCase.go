package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"

	cacheport "go-wedding/internal/infrastructure/cache/port"
	"go-wedding/internal/logging"
	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

const statsTTL = 60 * time.Second

// StatsKey is the cache key holding an event's RSVP stats.
func StatsKey(eventID string) string {
	return "event:" + eventID + ":rsvp_stats"
}

// RSVPStatsUseCase computes an event's RSVP stats through a short-lived cache.
// Cache failures degrade to a direct computation.
type RSVPStatsUseCase struct {
	Repo  repository.GuestRepository
	Cache cacheport.Cache
}

func NewRSVPStatsUseCase(repo repository.GuestRepository, cache cacheport.Cache) *RSVPStatsUseCase {
	return &RSVPStatsUseCase{Repo: repo, Cache: cache}
}

func (uc *RSVPStatsUseCase) Execute(ctx context.Context, eventID string) (guest.RSVPStats, error) {
	key := StatsKey(eventID)
	raw, err := uc.Cache.Get(ctx, key)
	if err == nil {
		var s guest.RSVPStats
		if json.Unmarshal([]byte(raw), &s) == nil {
			return s, nil
		}
	} else if !errors.Is(err, cacheport.ErrMiss) {
		logging.Ctx(ctx).Warn().Err(err).Str("event_id", eventID).Msg("rsvp stats cache read failed")
	}

	guests, err := uc.Repo.List(ctx, eventID, nil)
	if err != nil {
		return guest.RSVPStats{}, apperr.FromRepository(err)
	}
	s := guest.Tally(guests)
	if b, err := json.Marshal(s); err == nil {
		if err := uc.Cache.Set(ctx, key, string(b), statsTTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("event_id", eventID).Msg("rsvp stats cache write failed")
		}
	}
	return s, nil
}

// Invalidate drops the cached stats after a write.
func (uc *RSVPStatsUseCase) Invalidate(ctx context.Context, eventID string) {
	if _, err := uc.Cache.Del(ctx, StatsKey(eventID)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event_id", eventID).Msg("rsvp stats cache invalidation failed")
	}
}
