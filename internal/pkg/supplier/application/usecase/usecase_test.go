package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	event "go-wedding/internal/pkg/event/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
	supplier "go-wedding/internal/pkg/supplier/application/domain"
)

type memSuppliers struct {
	seq   int
	order []string
	rows  map[string]supplier.Supplier
}

func newMemSuppliers() *memSuppliers {
	return &memSuppliers{rows: map[string]supplier.Supplier{}}
}

func (m *memSuppliers) Create(_ context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	m.seq++
	s.ID = fmt.Sprintf("s-%d", m.seq)
	m.rows[s.ID] = s
	m.order = append(m.order, s.ID)
	return s, nil
}

func (m *memSuppliers) Get(_ context.Context, eventID, id string) (supplier.Supplier, error) {
	s, ok := m.rows[id]
	if !ok || s.EventID != eventID {
		return supplier.Supplier{}, supplier.ErrSupplierNotFound
	}
	return s, nil
}

func (m *memSuppliers) List(_ context.Context, eventID string) ([]supplier.Supplier, error) {
	out := []supplier.Supplier{}
	for _, id := range m.order {
		if s, ok := m.rows[id]; ok && s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSuppliers) Update(ctx context.Context, s supplier.Supplier) (supplier.Supplier, error) {
	if _, err := m.Get(ctx, s.EventID, s.ID); err != nil {
		return supplier.Supplier{}, err
	}
	m.rows[s.ID] = s
	return s, nil
}

func (m *memSuppliers) Delete(ctx context.Context, eventID, id string) error {
	if _, err := m.Get(ctx, eventID, id); err != nil {
		return err
	}
	delete(m.rows, id)
	return nil
}

type stubEvents map[string]event.Event

func (s stubEvents) Get(_ context.Context, id string) (event.Event, error) {
	e, ok := s[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return e, nil
}

func TestSupplierLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemSuppliers()

	created, err := NewAddSupplierUseCase(repo).Execute(ctx, supplier.Supplier{EventID: "e1", Name: "Band", Category: "Music", AgreedCents: 2_000})
	require.NoError(t, err)
	assert.Equal(t, "music", created.Category)

	_, err = NewAddSupplierUseCase(repo).Execute(ctx, supplier.Supplier{EventID: "e1", Name: "", AgreedCents: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	paid := int64(2_000)
	updated, err := NewUpdateSupplierUseCase(repo).Execute(ctx, UpdateSupplierInput{
		EventID: "e1", SupplierID: created.ID, Patch: supplier.Patch{PaidCents: &paid},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2_000), updated.PaidCents)

	over := int64(2_001)
	_, err = NewUpdateSupplierUseCase(repo).Execute(ctx, UpdateSupplierInput{
		EventID: "e1", SupplierID: created.ID, Patch: supplier.Patch{PaidCents: &over},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = NewUpdateSupplierUseCase(repo).Execute(ctx, UpdateSupplierInput{EventID: "e2", SupplierID: created.ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := NewListSuppliersUseCase(repo).Execute(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, NewRemoveSupplierUseCase(repo).Execute(ctx, RemoveSupplierInput{EventID: "e1", SupplierID: created.ID}))
	err = NewRemoveSupplierUseCase(repo).Execute(ctx, RemoveSupplierInput{EventID: "e1", SupplierID: created.ID})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestBudgetSummary(t *testing.T) {
	ctx := context.Background()
	repo := newMemSuppliers()
	add := NewAddSupplierUseCase(repo)
	_, err := add.Execute(ctx, supplier.Supplier{EventID: "e1", Name: "Venue", Category: "venue", AgreedCents: 8_000, PaidCents: 4_000})
	require.NoError(t, err)
	_, err = add.Execute(ctx, supplier.Supplier{EventID: "e1", Name: "Cake", Category: "catering", AgreedCents: 1_000})
	require.NoError(t, err)

	uc := NewBudgetSummaryUseCase(repo, stubEvents{"e1": {ID: "e1", BudgetCents: 10_000}})
	b, err := uc.Execute(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(9_000), b.AgreedCents)
	assert.Equal(t, int64(4_000), b.PaidCents)
	assert.Equal(t, int64(5_000), b.OutstandingCents)
	assert.Equal(t, int64(1_000), b.RemainingCents)
	assert.Len(t, b.ByCategory, 2)

	_, err = uc.Execute(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
