package usecase

import (
	"context"
	"errors"

	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type RecordStatusInput struct {
	ProviderMessageID string
	Status            messaging.MessageStatus
	Error             string
}

// RecordStatusUseCase applies a provider delivery callback. Callbacks arrive
// out of order and repeat, so only forward transitions are stored.
type RecordStatusUseCase struct {
	Repo repository.MessagingRepository
}

func NewRecordStatusUseCase(repo repository.MessagingRepository) *RecordStatusUseCase {
	return &RecordStatusUseCase{Repo: repo}
}

// Execute reports whether the callback changed the message.
func (uc *RecordStatusUseCase) Execute(ctx context.Context, in RecordStatusInput) (bool, error) {
	if in.ProviderMessageID == "" {
		return false, nil
	}
	m, err := uc.Repo.FindByProviderID(ctx, in.ProviderMessageID)
	if errors.Is(err, messaging.ErrMessageNotFound) {
		logging.Ctx(ctx).Debug().Str("provider_message_id", in.ProviderMessageID).Msg("status for unknown message")
		return false, nil
	}
	if err != nil {
		return false, apperr.FromRepository(err)
	}
	if !messaging.CanTransition(m.Status, in.Status) {
		return false, nil
	}

	next := m
	next.Status = in.Status
	if in.Status == messaging.MessageFailed {
		next.LastError = in.Error
		if next.LastError == "" {
			next.LastError = "provider reported failure"
		}
	}
	ok, err := uc.Repo.TransitionMessage(ctx, next, m.Status)
	if err != nil {
		return false, apperr.FromRepository(err)
	}
	if !ok {
		return false, nil
	}
	metrics.Messages.WithLabelValues(string(m.Channel), string(in.Status)).Inc()
	if _, err := uc.Repo.RecountJob(ctx, m.JobID); err != nil {
		return true, apperr.FromRepository(err)
	}
	return true, nil
}
