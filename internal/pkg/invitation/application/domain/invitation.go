package invitation

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"go-wedding/internal/pkg/platform/apperr"
)

const (
	MinPromptLength = 3
	MaxPromptLength = 1000
	MaxImageBytes   = 8 << 20
)

// Prompt trims p and checks its length in characters.
func Prompt(p string) (string, error) {
	p = strings.TrimSpace(p)
	n := utf8.RuneCountInString(p)
	if n < MinPromptLength || n > MaxPromptLength {
		return "", apperr.Validationf("invitation: prompt must be %d to %d characters", MinPromptLength, MaxPromptLength)
	}
	return p, nil
}

// BaseImage sniffs img and returns its content type. Only PNG and JPEG up to
// MaxImageBytes are accepted.
func BaseImage(img []byte) (string, error) {
	if len(img) == 0 {
		return "", apperr.Validation("invitation: base image is required")
	}
	if len(img) > MaxImageBytes {
		return "", apperr.Validationf("invitation: base image exceeds %d MiB", MaxImageBytes>>20)
	}
	switch ct := http.DetectContentType(img); ct {
	case "image/png", "image/jpeg":
		return ct, nil
	default:
		return "", apperr.Validationf("invitation: unsupported image type %s", ct)
	}
}

// ObjectKey is where a generated invitation for eventID is stored.
func ObjectKey(eventID string) string {
	return "invitations/" + eventID + "/" + uuid.NewString() + ".png"
}
