package messaging

import (
	guest "go-wedding/internal/pkg/guest/application/domain"
)

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelVoice    Channel = "voice"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelWhatsApp, ChannelSMS, ChannelVoice:
		return true
	}
	return false
}

// Audience selects recipients by RSVP status.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudiencePending  Audience = "pending"
	AudienceAccepted Audience = "accepted"
	AudienceDeclined Audience = "declined"
)

func (a Audience) Valid() bool {
	switch a {
	case AudienceAll, AudiencePending, AudienceAccepted, AudienceDeclined:
		return true
	}
	return false
}

// RSVPFilter is the status filter for guest listing; nil selects everyone.
func (a Audience) RSVPFilter() *guest.RSVPStatus {
	if a == AudienceAll {
		return nil
	}
	s := guest.RSVPStatus(a)
	return &s
}
