package usecase

import (
	"context"

	"go-wedding/internal/pkg/platform/apperr"
	seating "go-wedding/internal/pkg/seating/application/domain"
	repository "go-wedding/internal/pkg/seating/persistence/repository/port"
)

type CreateTableInput struct {
	EventID  string
	Name     string
	Shape    string
	Capacity int
	X        float64
	Y        float64
	Rotation float64
}

type CreateTableUseCase struct {
	Repo repository.SeatingRepository
}

func NewCreateTableUseCase(repo repository.SeatingRepository) *CreateTableUseCase {
	return &CreateTableUseCase{Repo: repo}
}

func (uc *CreateTableUseCase) Execute(ctx context.Context, in CreateTableInput) (*seating.Layout, error) {
	t := seating.Table{
		EventID:  in.EventID,
		Name:     in.Name,
		Shape:    seating.Shape(in.Shape),
		Capacity: in.Capacity,
		X:        in.X,
		Y:        in.Y,
		Rotation: in.Rotation,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	created, err := uc.Repo.CreateTable(ctx, t)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	l := seating.NewLayout(created, nil)
	return &l, nil
}
