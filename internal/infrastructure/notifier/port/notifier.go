package port

import (
	"context"
	"errors"
	"fmt"
)

// Outbound is one message handed to a provider.
type Outbound struct {
	To   string // E.164
	Body string
	// Reference is our message id, echoed to providers that accept one.
	Reference string
}

// Receipt is what a provider returns on acceptance.
type Receipt struct {
	ProviderMessageID string
}

// Notifier delivers a message over one channel.
type Notifier interface {
	Send(ctx context.Context, msg Outbound) (Receipt, error)
}

// ProviderError is a rejected or failed provider call. Permanent errors will
// fail again on retry; everything else may heal.
type ProviderError struct {
	Provider   string
	StatusCode int
	Permanent  bool
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsPermanent reports whether err is a provider rejection that retrying cannot fix.
func IsPermanent(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Permanent
}

// Classify maps an HTTP status to a ProviderError: 4xx except 429 is permanent.
func Classify(provider string, status int, message string) *ProviderError {
	permanent := status >= 400 && status < 500 && status != 429
	return &ProviderError{Provider: provider, StatusCode: status, Permanent: permanent, Message: message}
}
