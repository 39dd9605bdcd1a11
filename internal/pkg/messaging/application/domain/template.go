package messaging

import (
	"strings"
	"unicode/utf8"

	"go-wedding/internal/pkg/platform/apperr"
)

const MaxTemplateLength = 1000

// ValidateTemplate checks a campaign template before any message is rendered.
func ValidateTemplate(tpl string) error {
	if strings.TrimSpace(tpl) == "" {
		return apperr.Validation("template is required")
	}
	if utf8.RuneCountInString(tpl) > MaxTemplateLength {
		return apperr.Validationf("template must be at most %d characters", MaxTemplateLength)
	}
	return nil
}

// Vars are the values substituted into a template for one guest.
type Vars struct {
	Name     string
	Event    string
	Date     string
	Venue    string
	RSVPLink string
}

// Render substitutes {name}, {event}, {date}, {venue} and {rsvp_link}.
// Unknown placeholders are left as written.
func Render(tpl string, v Vars) string {
	return strings.NewReplacer(
		"{name}", v.Name,
		"{event}", v.Event,
		"{date}", v.Date,
		"{venue}", v.Venue,
		"{rsvp_link}", v.RSVPLink,
	).Replace(tpl)
}
