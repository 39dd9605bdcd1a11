package port

import (
	"context"
	"errors"
	"fmt"
)

// EditRequest asks the provider to redraw a base image following a prompt.
type EditRequest struct {
	Image       []byte
	ContentType string // image/png or image/jpeg
	Prompt      string
}

// Editor produces a PNG from a base image and a prompt.
type Editor interface {
	Edit(ctx context.Context, req EditRequest) ([]byte, error)
}

// Error is a failed image call. Rejected means the provider refused the
// input itself, as with a content policy refusal.
type Error struct {
	StatusCode int
	Rejected   bool
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("imagegen: status %d: %s", e.StatusCode, e.Message)
	}
	return "imagegen: " + e.Message
}

// IsRejected reports whether err is a refusal that retrying cannot fix.
func IsRejected(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Rejected
}
