package messaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	guest "go-wedding/internal/pkg/guest/application/domain"
	"go-wedding/internal/pkg/platform/apperr"
)

func TestRender(t *testing.T) {
	out := Render("Hi {name}! {event} on {date} at {venue}. Reply: {rsvp_link} {unknown}", Vars{
		Name: "Ana", Event: "Ana & Bo", Date: "Saturday, June 6, 2026", Venue: "Quinta", RSVPLink: "https://w.example/rsvp/t1",
	})
	assert.Equal(t, "Hi Ana! Ana & Bo on Saturday, June 6, 2026 at Quinta. Reply: https://w.example/rsvp/t1 {unknown}", out)
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate("Hello {name}"))
	assert.ErrorIs(t, ValidateTemplate("   "), apperr.ErrValidation)
	assert.NoError(t, ValidateTemplate(strings.Repeat("é", MaxTemplateLength)))
	assert.ErrorIs(t, ValidateTemplate(strings.Repeat("a", MaxTemplateLength+1)), apperr.ErrValidation)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to MessageStatus
		ok       bool
	}{
		{MessagePending, MessageSent, true},
		{MessageSent, MessageDelivered, true},
		{MessageDelivered, MessageRead, true},
		{MessagePending, MessageRead, true},
		{MessageRead, MessageDelivered, false},
		{MessageDelivered, MessageSent, false},
		{MessageSent, MessageSent, false},
		{MessagePending, MessageFailed, true},
		{MessageSent, MessageFailed, true},
		{MessageDelivered, MessageFailed, false},
		{MessageFailed, MessageSent, false},
		{MessagePending, MessageSkipped, true},
		{MessageSent, MessageSkipped, false},
		{MessageSkipped, MessageSent, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestJobOutcome(t *testing.T) {
	assert.Equal(t, JobFailed, Job{Total: 2, Failed: 2}.Outcome())
	assert.Equal(t, JobCompleted, Job{Total: 2, Sent: 1, Failed: 1}.Outcome())
	assert.Equal(t, JobCompleted, Job{Total: 2, Skipped: 2}.Outcome())
	assert.Equal(t, 1, Job{Total: 4, Sent: 1, Failed: 1, Skipped: 1}.Pending())
}

func TestAudienceFilter(t *testing.T) {
	assert.Nil(t, AudienceAll.RSVPFilter())
	assert.Equal(t, guest.StatusDeclined, *AudienceDeclined.RSVPFilter())
	assert.False(t, Audience("vip").Valid())
	assert.True(t, ChannelVoice.Valid())
	assert.False(t, Channel("email").Valid())
}
