package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type TableSeatsInput struct {
	EventID string
	TableID string
}

// TableSeatsUseCase computes one table's seat positions and occupants.
type TableSeatsUseCase struct {
	Repo repository.SeatingRepository
}

func NewTableSeatsUseCase(repo repository.SeatingRepository) *TableSeatsUseCase {
	return &TableSeatsUseCase{Repo: repo}
}

func (uc *TableSeatsUseCase) Execute(ctx context.Context, in TableSeatsInput) (*seating.Layout, error) {
	t, err := uc.Repo.GetTable(ctx, in.EventID, in.TableID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	seated, err := uc.Repo.SeatedGuests(ctx, in.EventID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	var mine []seating.SeatedGuest
	for _, s := range seated {
		if s.TableID == t.ID {
			mine = append(mine, s)
		}
	}
	l := seating.NewLayout(t, mine)
	return &l, nil
}
