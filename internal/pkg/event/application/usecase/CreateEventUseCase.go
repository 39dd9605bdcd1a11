package usecase

import (
	"context"
	"strings"
	"time"

	event "go-wedding/internal/pkg/event/application/domain"
	repository "go-wedding/internal/pkg/event/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

type CreateEventInput struct {
	WorkspaceID string
	Title       string
	EventDate   *time.Time
	Venue       string
	Address     string
	BudgetCents int64
	Notes       string
}

type CreateEventUseCase struct {
	Repo repository.EventRepository
}

func NewCreateEventUseCase(repo repository.EventRepository) *CreateEventUseCase {
	return &CreateEventUseCase{Repo: repo}
}

func (uc *CreateEventUseCase) Execute(ctx context.Context, in CreateEventInput) (*event.Event, error) {
	e := event.Event{
		WorkspaceID: in.WorkspaceID,
		Title:       strings.TrimSpace(in.Title),
		Venue:       strings.TrimSpace(in.Venue),
		Address:     strings.TrimSpace(in.Address),
		BudgetCents: in.BudgetCents,
		Notes:       in.Notes,
	}
	if in.EventDate != nil {
		d := in.EventDate.UTC()
		e.EventDate = &d
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.Repo.Create(ctx, e)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return &created, nil
}
