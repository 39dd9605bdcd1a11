package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type UpdateTableInput struct {
	EventID  string
	TableID  string
	Name     *string
	Shape    *string
	Capacity *int
	X        *float64
	Y        *float64
	Rotation *float64
}

// UpdateTableUseCase moves, reshapes or resizes a table. Capacity may not drop
// below the headcount already seated.
type UpdateTableUseCase struct {
	Repo repository.SeatingRepository
}

func NewUpdateTableUseCase(repo repository.SeatingRepository) *UpdateTableUseCase {
	return &UpdateTableUseCase{Repo: repo}
}

func (uc *UpdateTableUseCase) Execute(ctx context.Context, in UpdateTableInput) (*seating.Layout, error) {
	cur, err := uc.Repo.GetTable(ctx, in.EventID, in.TableID)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	next := cur
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Shape != nil {
		next.Shape = seating.Shape(*in.Shape)
	}
	if in.Capacity != nil {
		next.Capacity = *in.Capacity
	}
	if in.X != nil {
		next.X = *in.X
	}
	if in.Y != nil {
		next.Y = *in.Y
	}
	if in.Rotation != nil {
		next.Rotation = *in.Rotation
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.Repo.UpdateTable(ctx, next, func(_ seating.Table, occupied int) error {
		return seating.CheckCapacity(next.Capacity, occupied)
	})
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	return NewTableSeatsUseCase(uc.Repo).Execute(ctx, TableSeatsInput{EventID: updated.EventID, TableID: updated.ID})
}
