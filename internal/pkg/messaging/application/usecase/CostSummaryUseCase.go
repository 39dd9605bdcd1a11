package usecase

import (
	"context"

	messaging "go-wedding/internal/pkg/messaging/application/domain"
	repository "go-wedding/internal/pkg/messaging/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

// CostSummary totals an event's provider spend.
type CostSummary struct {
	TotalMicros int64                `json:"total_micros"`
	Lines       []messaging.CostLine `json:"lines"`
}

type CostSummaryUseCase struct {
	Repo repository.MessagingRepository
}

func NewCostSummaryUseCase(repo repository.MessagingRepository) *CostSummaryUseCase {
	return &CostSummaryUseCase{Repo: repo}
}

func (uc *CostSummaryUseCase) Execute(ctx context.Context, eventID string) (*CostSummary, error) {
	lines, err := uc.Repo.CostSummary(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	s := &CostSummary{Lines: lines}
	for _, l := range lines {
		s.TotalMicros += l.AmountMicros
	}
	return s, nil
}
