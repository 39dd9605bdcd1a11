package usecase

import (
	"context"

	event "go-wedding/internal/pkg/event/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
	repository "go-wedding/internal/pkg/supplier/persistence/repository/port"
)

// EventReader loads the event whose budget is being summarized.
type EventReader interface {
	Get(ctx context.Context, id string) (event.Event, error)
}

// BudgetSummaryUseCase compares an event's budget with its supplier commitments.
type BudgetSummaryUseCase struct {
	Repo   repository.SupplierRepository
	Events EventReader
}

func NewBudgetSummaryUseCase(repo repository.SupplierRepository, events EventReader) *BudgetSummaryUseCase {
	return &BudgetSummaryUseCase{Repo: repo, Events: events}
}

func (uc *BudgetSummaryUseCase) Execute(ctx context.Context, eventID string) (*supplier.Budget, error) {
	e, err := uc.Events.Get(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	suppliers, err := uc.Repo.List(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	b := supplier.Summarize(e.BudgetCents, suppliers)
	return &b, nil
}
