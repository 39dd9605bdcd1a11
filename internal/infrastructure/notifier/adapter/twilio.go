package adapter

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"go-wedding/internal/infrastructure/notifier/port"
	"go-wedding/internal/logging"
)

const defaultTwilioBase = "https://api.twilio.com"

// TwilioConfig holds account credentials shared by the SMS and voice notifiers.
type TwilioConfig struct {
	APIBase           string
	AccountSID        string
	AuthToken         string
	From              string
	StatusCallbackURL string
	HTTPClient        *http.Client
}

func (c TwilioConfig) resource(name string) string {
	base := strings.TrimRight(c.APIBase, "/")
	if base == "" {
		base = defaultTwilioBase
	}
	return base + "/2010-04-01/Accounts/" + url.PathEscape(c.AccountSID) + "/" + name + ".json"
}

// twilio posts a form to one Twilio REST resource.
type twilio struct {
	cfg      TwilioConfig
	endpoint string
	client   *httpClient
}

func (t *twilio) post(ctx context.Context, form url.Values) (port.Receipt, error) {
	if t.cfg.StatusCallbackURL != "" {
		form.Set("StatusCallback", t.cfg.StatusCallbackURL)
	}
	encoded := form.Encode()
	raw, err := t.client.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, "message")
	if err != nil {
		return port.Receipt{}, err
	}
	// A 2xx means Twilio accepted the message, with or without a sid.
	sid := gjson.GetBytes(raw, "sid").String()
	if sid == "" {
		logging.Ctx(ctx).Warn().Str("provider", t.client.provider).Msg("accepted response carried no sid")
	}
	return port.Receipt{ProviderMessageID: sid}, nil
}

// TwilioSMSNotifier sends SMS through the Twilio Messages resource.
type TwilioSMSNotifier struct {
	twilio
}

func NewTwilioSMSNotifier(cfg TwilioConfig) *TwilioSMSNotifier {
	return &TwilioSMSNotifier{twilio{cfg: cfg, endpoint: cfg.resource("Messages"), client: newHTTPClient("twilio_sms", cfg.HTTPClient)}}
}

var _ port.Notifier = (*TwilioSMSNotifier)(nil)

func (n *TwilioSMSNotifier) Send(ctx context.Context, msg port.Outbound) (port.Receipt, error) {
	return n.post(ctx, url.Values{"To": {msg.To}, "From": {n.cfg.From}, "Body": {msg.Body}})
}

// TwilioVoiceNotifier places a call that reads the message aloud.
type TwilioVoiceNotifier struct {
	twilio
}

func NewTwilioVoiceNotifier(cfg TwilioConfig) *TwilioVoiceNotifier {
	return &TwilioVoiceNotifier{twilio{cfg: cfg, endpoint: cfg.resource("Calls"), client: newHTTPClient("twilio_voice", cfg.HTTPClient)}}
}

var _ port.Notifier = (*TwilioVoiceNotifier)(nil)

func (n *TwilioVoiceNotifier) Send(ctx context.Context, msg port.Outbound) (port.Receipt, error) {
	twiml, err := Twiml(msg.Body)
	if err != nil {
		return port.Receipt{}, err
	}
	return n.post(ctx, url.Values{"To": {msg.To}, "From": {n.cfg.From}, "Twiml": {twiml}})
}

// Twiml wraps text in a <Response><Say> document.
func Twiml(text string) (string, error) {
	var b strings.Builder
	b.WriteString("<Response><Say>")
	if err := xml.EscapeText(&b, []byte(text)); err != nil {
		return "", err
	}
	b.WriteString("</Say></Response>")
	return b.String(), nil
}
