package messaging

import (
	"time"
)

type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
	MessageSkipped   MessageStatus = "skipped"
)

// Skip reasons stored in LastError.
const (
	ReasonCancelled   = "cancelled"
	ReasonRateLimited = "rate_limited"
)

var progress = map[MessageStatus]int{
	MessagePending:   0,
	MessageSent:      1,
	MessageDelivered: 2,
	MessageRead:      3,
}

// CanTransition reports whether a message may move from one status to the
// next. Delivery progress only moves forward; failure is possible until the
// provider confirmed delivery; skipped and failed are final.
func CanTransition(from, to MessageStatus) bool {
	switch to {
	case MessageFailed:
		return from == MessagePending || from == MessageSent
	case MessageSkipped:
		return from == MessagePending
	}
	fromRank, ok := progress[from]
	if !ok {
		return false
	}
	toRank, ok := progress[to]
	return ok && toRank > fromRank
}

// Message is one rendered message to one guest.
type Message struct {
	ID                string        `db:"id"`
	JobID             string        `db:"job_id"`
	EventID           string        `db:"event_id"`
	GuestID           *string       `db:"guest_id"`
	Channel           Channel       `db:"channel"`
	To                string        `db:"to_address"`
	Body              string        `db:"body"`
	Status            MessageStatus `db:"status"`
	ProviderMessageID string        `db:"provider_message_id"`
	Attempts          int           `db:"attempts"`
	LastError         string        `db:"last_error"`
	SentAt            *time.Time    `db:"sent_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

// CostKind labels what a cost log entry paid for.
type CostKind string

const (
	CostMessage CostKind = "message"
	CostImage   CostKind = "image"
)

// CostLog records one billable provider call.
type CostLog struct {
	ID           string    `db:"id"`
	WorkspaceID  string    `db:"workspace_id"`
	EventID      *string   `db:"event_id"`
	Kind         CostKind  `db:"kind"`
	Channel      string    `db:"channel"`
	Units        int       `db:"units"`
	AmountMicros int64     `db:"amount_micros"`
	Reference    string    `db:"reference"`
	CreatedAt    time.Time `db:"created_at"`
}

// CostLine is one row of a cost summary.
type CostLine struct {
	Kind         CostKind `json:"kind"`
	Channel      string   `json:"channel"`
	Units        int      `json:"units"`
	AmountMicros int64    `json:"amount_micros"`
}
