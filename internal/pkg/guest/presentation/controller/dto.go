package controller

import (
	"time"

	guest "go-wedding/internal/pkg/guest/application/domain"
)

type rsvpResponse struct {
	Status      guest.RSVPStatus `json:"status"`
	PartySize   int              `json:"party_size"`
	Note        string           `json:"note,omitempty"`
	RespondedAt *time.Time       `json:"responded_at"`
}

type guestResponse struct {
	ID           string       `json:"id"`
	EventID      string       `json:"event_id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Group        string       `json:"group"`
	InvitedCount int          `json:"invited_count"`
	InviteToken  string       `json:"invite_token"`
	TableID      *string      `json:"table_id"`
	Notes        string       `json:"notes"`
	RSVP         rsvpResponse `json:"rsvp"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func toRSVP(r guest.RSVP) rsvpResponse {
	return rsvpResponse{Status: r.Status, PartySize: r.PartySize, Note: r.Note, RespondedAt: r.RespondedAt}
}

func toResponse(g guest.GuestView) guestResponse {
	return guestResponse{
		ID:           g.ID,
		EventID:      g.EventID,
		Name:         g.Name,
		Phone:        g.Phone,
		Group:        g.Group,
		InvitedCount: g.InvitedCount,
		InviteToken:  g.InviteToken,
		TableID:      g.TableID,
		Notes:        g.Notes,
		RSVP:         toRSVP(g.RSVP),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type guestRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Group        string `json:"group"`
	InvitedCount int    `json:"invited_count" binding:"gte=0"`
	Notes        string `json:"notes"`
}

func (r guestRequest) draft() guest.Draft {
	return guest.Draft{Name: r.Name, Phone: r.Phone, Group: r.Group, InvitedCount: r.InvitedCount, Notes: r.Notes}
}

type answerRequest struct {
	Status    string `json:"status" binding:"required,oneof=accepted declined"`
	PartySize int    `json:"party_size" binding:"gte=0"`
	Note      string `json:"note"`
}

func (r answerRequest) answer() guest.Answer {
	return guest.Answer{Status: guest.RSVPStatus(r.Status), PartySize: r.PartySize, Note: r.Note}
}
