package usecase

import (
	"context"
	"time"

	guest "go-wedding/internal/pkg/guest/application/domain"
	repository "go-wedding/internal/pkg/guest/persistence/repository/port"
	"go-wedding/internal/pkg/platform/apperr"
)

const maxImportRows = 2000

type ImportGuestsInput struct {
	EventID string
	Rows    []guest.Draft
}

// RowError reports a rejected import row by its zero-based position.
type RowError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created []guest.Guest
	Errors  []RowError
}

// ImportGuestsUseCase inserts the valid rows of a batch and reports the rest.
type ImportGuestsUseCase struct {
	Repo  repository.GuestRepository
	Stats *RSVPStatsUseCase
}

func NewImportGuestsUseCase(repo repository.GuestRepository, stats *RSVPStatsUseCase) *ImportGuestsUseCase {
	return &ImportGuestsUseCase{Repo: repo, Stats: stats}
}

func (uc *ImportGuestsUseCase) Execute(ctx context.Context, in ImportGuestsInput) (*ImportResult, error) {
	if len(in.Rows) == 0 {
		return nil, apperr.Validation("no rows to import")
	}
	if len(in.Rows) > maxImportRows {
		return nil, apperr.Validationf("at most %d rows per import", maxImportRows)
	}

	now := time.Now().UTC()
	res := &ImportResult{Created: []guest.Guest{}, Errors: []RowError{}}
	valid := make([]guest.Guest, 0, len(in.Rows))
	for i, row := range in.Rows {
		d, err := row.Normalize()
		if err != nil {
			res.Errors = append(res.Errors, RowError{Index: i, Error: err.Error()})
			continue
		}
		valid = append(valid, guest.NewGuest(in.EventID, d, now))
	}
	if len(valid) == 0 {
		return res, nil
	}

	created, err := uc.Repo.Create(ctx, valid)
	if err != nil {
		return nil, apperr.FromRepository(err)
	}
	res.Created = created
	uc.Stats.Invalidate(ctx, in.EventID)
	return res, nil
}
