package usecase

import (
	"context"
	"time"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type SetRSVPInput struct {
	EventID string
	GuestID string
	Answer  guest.Answer
	// FullParty accepts on behalf of everyone invited, ignoring Answer.PartySize.
	FullParty bool
}

// SetRSVPUseCase records an answer on a guest's behalf: a planner override or
// a reply to a campaign message.
type SetRSVPUseCase struct {
	rsvpRecorder
}

func NewSetRSVPUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase, feed Publisher) *SetRSVPUseCase {
	return &SetRSVPUseCase{rsvpRecorder{repo: repo, stats: stats, feed: feed, now: time.Now}}
}

func (uc *SetRSVPUseCase) Execute(ctx context.Context, in SetRSVPInput) (*guest.GuestView, error) {
	g, err := uc.repo.Get(ctx, in.EventID, in.GuestID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	a := in.Answer
	if in.FullParty && a.Status == guest.StatusAccepted {
		a.PartySize = g.InvitedCount
	}
	return uc.record(ctx, g, a)
}
