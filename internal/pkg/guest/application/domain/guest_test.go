package guest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-wedding/internal/pkg/platform/apperr"
)

func TestDraftNormalize(t *testing.T) {
	d, err := Draft{Name: "  Avi Cohen ", Phone: "00972 54-123-4567"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Avi Cohen", d.Name)
	assert.Equal(t, "+972541234567", d.Phone)
	assert.Equal(t, 1, d.InvitedCount)

	_, err = Draft{Name: "X", Phone: "054"}.Normalize()
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = Draft{Name: "X", InvitedCount: -2}.Normalize()
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = Draft{Name: " "}.Normalize()
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNewGuestHasUniqueToken(t *testing.T) {
	a := NewGuest("ev", Draft{Name: "A", InvitedCount: 1}, time.Now())
	b := NewGuest("ev", Draft{Name: "B", InvitedCount: 1}, time.Now())
	assert.NotEmpty(t, a.InviteToken)
	assert.NotEqual(t, a.InviteToken, b.InviteToken)
}

func TestAnswerResolve(t *testing.T) {
	g := Guest{ID: "g1", InvitedCount: 3}
	now := time.Now()

	r, err := Answer{Status: StatusAccepted, PartySize: 2}.Resolve(g, now)
	require.NoError(t, err)
	assert.Equal(t, 2, r.PartySize)
	assert.Equal(t, &now, r.RespondedAt)

	_, err = Answer{Status: StatusAccepted, PartySize: 4}.Resolve(g, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = Answer{Status: StatusAccepted}.Resolve(g, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	r, err = Answer{Status: StatusDeclined, PartySize: 3}.Resolve(g, now)
	require.NoError(t, err)
	assert.Zero(t, r.PartySize)

	_, err = Answer{Status: StatusPending}.Resolve(g, now)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestTallyAndHeadcount(t *testing.T) {
	guests := []GuestView{
		{Guest: Guest{InvitedCount: 2}, RSVP: RSVP{Status: StatusAccepted, PartySize: 1}},
		{Guest: Guest{InvitedCount: 4}, RSVP: RSVP{Status: StatusDeclined}},
		{Guest: Guest{InvitedCount: 3}, RSVP: RSVP{Status: StatusPending}},
	}
	assert.Equal(t, RSVPStats{Total: 3, Pending: 1, Accepted: 1, Declined: 1, Attending: 1, Invited: 9}, Tally(guests))

	assert.Equal(t, 1, guests[0].Headcount())
	assert.Equal(t, 4, guests[1].Headcount())
	assert.Equal(t, 3, guests[2].Headcount())
}

func TestPatchApply(t *testing.T) {
	g := Guest{Name: "A", InvitedCount: 2, Phone: "+972541234567"}
	zero := 0
	_, err := Patch{InvitedCount: &zero}.Apply(g)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	empty := ""
	got, err := Patch{Phone: &empty}.Apply(g)
	require.NoError(t, err)
	assert.Empty(t, got.Phone)
	assert.Equal(t, 2, got.InvitedCount)
}
