package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

// ListTablesUseCase returns the floor plan: every table with its seats and guests.
type ListTablesUseCase struct {
	Repo repository.SeatingRepository
}

func NewListTablesUseCase(repo repository.SeatingRepository) *ListTablesUseCase {
	return &ListTablesUseCase{Repo: repo}
}

func (uc *ListTablesUseCase) Execute(ctx context.Context, eventID string) ([]seating.Layout, error) {
	tables, err := uc.Repo.ListTables(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	seated, err := uc.Repo.SeatedGuests(ctx, eventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	byTable := make(map[string][]seating.SeatedGuest, len(tables))
	for _, s := range seated {
		byTable[s.TableID] = append(byTable[s.TableID], s)
	}
	out := make([]seating.Layout, 0, len(tables))
	for _, t := range tables {
		out = append(out, seating.NewLayout(t, byTable[t.ID]))
	}
	return out, nil
}
