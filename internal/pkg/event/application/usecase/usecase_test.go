package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	event "go-wedding/internal/pkg/event/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
)

type memEvents struct {
	seq    int
	events map[string]event.Event
}

func newMemEvents() *memEvents { return &memEvents{events: map[string]event.Event{}} }

func (m *memEvents) Create(_ context.Context, e event.Event) (event.Event, error) {
	m.seq++
	e.ID = fmt.Sprintf("ev-%d", m.seq)
	m.events[e.ID] = e
	return e, nil
}

func (m *memEvents) Get(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	return e, nil
}

func (m *memEvents) ListByWorkspace(_ context.Context, ws string) ([]event.Event, error) {
	var out []event.Event
	for _, e := range m.events {
		if e.WorkspaceID == ws {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvents) Update(_ context.Context, e event.Event) (event.Event, error) {
	if _, ok := m.events[e.ID]; !ok {
		return event.Event{}, event.ErrEventNotFound
	}
	m.events[e.ID] = e
	return e, nil
}

func (m *memEvents) SetInvitationImage(_ context.Context, id, url, key string) error {
	e, ok := m.events[id]
	if !ok {
		return event.ErrEventNotFound
	}
	e.InvitationImageURL, e.InvitationImageKey = url, key
	m.events[id] = e
	return nil
}

func (m *memEvents) WorkspaceOf(ctx context.Context, id string) (string, error) {
	e, err := m.Get(ctx, id)
	return e.WorkspaceID, err
}

func TestCreateAndUpdateEvent(t *testing.T) {
	repo := newMemEvents()
	ctx := context.Background()
	date := time.Date(2026, 9, 3, 19, 30, 0, 0, time.FixedZone("IDT", 3*3600))

	created, err := NewCreateEventUseCase(repo).Execute(ctx, CreateEventInput{
		WorkspaceID: "ws-1", Title: " Noa & Dan ", EventDate: &date, BudgetCents: 5_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Noa & Dan", created.Title)
	assert.Equal(t, time.UTC, created.EventDate.Location())

	budget := int64(-5)
	_, err = NewUpdateEventUseCase(repo).Execute(ctx, UpdateEventInput{EventID: created.ID, Patch: event.Patch{BudgetCents: &budget}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	venue := "Garden Hall"
	updated, err := NewUpdateEventUseCase(repo).Execute(ctx, UpdateEventInput{EventID: created.ID, Patch: event.Patch{Venue: &venue}})
	require.NoError(t, err)
	assert.Equal(t, "Garden Hall", updated.Venue)
	assert.Equal(t, int64(5_000_000), updated.BudgetCents)

	ws, err := NewWorkspaceOfUseCase(repo).WorkspaceOf(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", ws)
}

func TestCreateEventRequiresTitle(t *testing.T) {
	_, err := NewCreateEventUseCase(newMemEvents()).Execute(context.Background(), CreateEventInput{WorkspaceID: "ws-1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetMissingEvent(t *testing.T) {
	_, err := NewGetEventUseCase(newMemEvents()).Execute(context.Background(), "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = NewUpdateEventUseCase(newMemEvents()).Execute(context.Background(), UpdateEventInput{EventID: "nope"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
