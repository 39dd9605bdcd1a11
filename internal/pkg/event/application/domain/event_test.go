package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	ok := Event{WorkspaceID: "ws", Title: "Noa & Dan"}
	assert.NoError(t, ok.Validate())

	assert.Error(t, Event{WorkspaceID: "ws", Title: "  "}.Validate())
	assert.Error(t, Event{Title: "x"}.Validate())
	assert.Error(t, Event{WorkspaceID: "ws", Title: "x", BudgetCents: -1}.Validate())
}

func TestPatchApply(t *testing.T) {
	d := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	e := Event{Title: "Old", Venue: "Hall", EventDate: &d}

	title := " New "
	got := Patch{Title: &title}.Apply(e)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Hall", got.Venue)
	assert.Equal(t, &d, got.EventDate)

	got = Patch{ClearDate: true}.Apply(e)
	assert.Nil(t, got.EventDate)
	assert.Equal(t, "Friday, June 12, 2026", e.DateLabel())
}
