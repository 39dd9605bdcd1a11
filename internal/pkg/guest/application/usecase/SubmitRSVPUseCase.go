package usecase

import (
	"context"
	"time"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type SubmitRSVPInput struct {
	Token  string
	Answer guest.Answer
}

// SubmitRSVPUseCase records a guest's answer given through the invite link.
// Guests may change their answer any number of times.
type SubmitRSVPUseCase struct {
	rsvpRecorder
}

func NewSubmitRSVPUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase, feed Publisher) *SubmitRSVPUseCase {
	return &SubmitRSVPUseCase{rsvpRecorder{repo: repo, stats: stats, feed: feed, now: time.Now}}
}

func (uc *SubmitRSVPUseCase) Execute(ctx context.Context, in SubmitRSVPInput) (*guest.GuestView, error) {
	if in.Token == "" {
		return nil, guest.ErrInvitationNotFound
	}
	g, err := uc.repo.FindByToken(ctx, in.Token)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return uc.record(ctx, g, in.Answer)
}
