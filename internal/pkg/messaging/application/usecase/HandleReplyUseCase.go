package usecase

import (
	"context"
	"errors"

	"go-wedding/internal/logging"
	guest "go-wedding/internal/pkg/guest/application/domain"
	guestusecase "go-wedding/internal/pkg/guest/application/usecase"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// Quick-reply button payloads attached to WhatsApp campaign messages.
const (
	ReplyAccept  = "RSVP_ACCEPT"
	ReplyDecline = "RSVP_DECLINE"
)

type HandleReplyInput struct {
	// ContextMessageID is the provider id of the campaign message replied to.
	ContextMessageID string
	Payload          string
}

// HandleReplyUseCase turns an RSVP button reply into the guest's answer.
type HandleReplyUseCase struct {
	Repo repository.MessagingRepository
	RSVP RSVPRecorder
}

func NewHandleReplyUseCase(repo repository.MessagingRepository, rsvp RSVPRecorder) *HandleReplyUseCase {
	return &HandleReplyUseCase{Repo: repo, RSVP: rsvp}
}

// Execute reports whether an RSVP was recorded. Replies that are not RSVP
// buttons, or that reference unknown messages, are ignored.
func (uc *HandleReplyUseCase) Execute(ctx context.Context, in HandleReplyInput) (bool, error) {
	var status guest.RSVPStatus
	switch in.Payload {
	case ReplyAccept:
		status = guest.StatusAccepted
	case ReplyDecline:
		status = guest.StatusDeclined
	default:
		return false, nil
	}
	if in.ContextMessageID == "" {
		return false, nil
	}
	m, err := uc.Repo.FindByProviderID(ctx, in.ContextMessageID)
	if errors.Is(err, messaging.ErrMessageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.FromRepository(err)
	}
	if m.GuestID == nil {
		return false, nil
	}
	_, err = uc.RSVP.Execute(ctx, guestusecase.SetRSVPInput{
		EventID:   m.EventID,
		GuestID:   *m.GuestID,
		Answer:    guest.Answer{Status: status},
		FullParty: true,
	})
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	logging.Ctx(ctx).Info().Str("guest_id", *m.GuestID).Str("status", string(status)).Msg("rsvp recorded from reply")
	return true, nil
}
