package usecase

import (
	"context"
	"time"

	imagegen "go-wedding/internal/infrastructure/imagegen/port"
	storage "go-wedding/internal/infrastructure/storage/port"
	"go-wedding/internal/logging"
	"go-wedding/internal/metrics"
	event "go-wedding/internal/pkg/event/application/domain"
	invitation "go-wedding/internal/pkg/invitation/application/domain"
	messaging "go-wedding/internal/pkg/messaging/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
)

// EventImages reads an event and records its invitation image.
type EventImages interface {
	Get(ctx context.Context, id string) (event.Event, error)
	SetInvitationImage(ctx context.Context, id, url, key string) error
}

type CostLogger interface {
	LogCost(ctx context.Context, c messaging.CostLog) error
}

type GenerateInvitationInput struct {
	EventID   string
	Prompt    string
	BaseImage []byte
}

// GenerateInvitationUseCase renders an invitation from a base image and stores
// it as the event's current invitation.
type GenerateInvitationUseCase struct {
	Events     EventImages
	Editor     imagegen.Editor
	Store      storage.ObjectStore
	Costs      CostLogger
	CostMicros int64
}

func NewGenerateInvitationUseCase(events EventImages, editor imagegen.Editor, store storage.ObjectStore, costs CostLogger, costMicros int64) *GenerateInvitationUseCase {
	return &GenerateInvitationUseCase{Events: events, Editor: editor, Store: store, Costs: costs, CostMicros: costMicros}
}

func (uc *GenerateInvitationUseCase) Execute(ctx context.Context, in GenerateInvitationInput) (*event.Event, error) {
	prompt, err := invitation.Prompt(in.Prompt)
	if err != nil {
		return nil, err
	}
	contentType, err := invitation.BaseImage(in.BaseImage)
	if err != nil {
		return nil, err
	}
	ev, err := uc.Events.Get(ctx, in.EventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	log := logging.Ctx(ctx).With().Str("event_id", ev.ID).Logger()

	start := time.Now()
	png, err := uc.Editor.Edit(ctx, imagegen.EditRequest{Image: in.BaseImage, ContentType: contentType, Prompt: prompt})
	if err != nil {
		if imagegen.IsRejected(err) {
			return nil, apperr.Validationf("invitation: image provider refused the request: %v", err)
		}
		log.Error().Err(err).Msg("image generation failed")
		return nil, apperr.New(apperr.ErrUnavailable, "invitation: image provider unavailable")
	}
	log.Info().Dur("elapsed", time.Since(start)).Int("bytes", len(png)).Msg("invitation image generated")

	key := invitation.ObjectKey(ev.ID)
	url, err := uc.Store.Put(ctx, key, png, "image/png")
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("invitation upload failed")
		return nil, apperr.New(apperr.ErrUnavailable, "invitation: image upload failed")
	}
	if err := uc.Events.SetInvitationImage(ctx, ev.ID, url, key); err != nil {
		_ = uc.Store.Delete(ctx, key)
		return nil, apperr.FromRepository(err)
	}

	if prev := ev.InvitationImageKey; prev != "" && prev != key {
		if err := uc.Store.Delete(ctx, prev); err != nil {
			log.Warn().Err(err).Str("key", prev).Msg("previous invitation image not removed")
		}
	}
	uc.logCost(ctx, ev, key)

	ev.InvitationImageURL, ev.InvitationImageKey = url, key
	return &ev, nil
}

func (uc *GenerateInvitationUseCase) logCost(ctx context.Context, ev event.Event, key string) {
	eventID := ev.ID
	err := uc.Costs.LogCost(ctx, messaging.CostLog{
		WorkspaceID:  ev.WorkspaceID,
		EventID:      &eventID,
		Kind:         messaging.CostImage,
		Units:        1,
		AmountMicros: uc.CostMicros,
		Reference:    key,
	})
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("event_id", eventID).Msg("log image cost")
		return
	}
	metrics.CostMicros.WithLabelValues(string(messaging.CostImage)).Add(float64(uc.CostMicros))
}
