package adapter

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"go-wedding/internal/infrastructure/notifier/port"
	"go-wedding/internal/logging"
)

// WhatsAppConfig points the notifier at a WhatsApp Cloud API phone number.
type WhatsAppConfig struct {
	APIBase       string
	Token         string
	PhoneNumberID string
	HTTPClient    *http.Client
}

// WhatsAppNotifier sends text messages through the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	endpoint string
	token    string
	client   *httpClient
}

func NewWhatsAppNotifier(cfg WhatsAppConfig) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		endpoint: strings.TrimRight(cfg.APIBase, "/") + "/" + cfg.PhoneNumberID + "/messages",
		token:    cfg.Token,
		client:   newHTTPClient("whatsapp", cfg.HTTPClient),
	}
}

var _ port.Notifier = (*WhatsAppNotifier)(nil)

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

func (n *WhatsAppNotifier) Send(ctx context.Context, msg port.Outbound) (port.Receipt, error) {
	payload, err := json.Marshal(whatsAppRequest{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(msg.To, "+"),
		Type:             "text",
		Text:             whatsAppText{Body: msg.Body},
	})
	if err != nil {
		return port.Receipt{}, err
	}
	raw, err := n.client.do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+n.token)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, "error.message")
	if err != nil {
		return port.Receipt{}, err
	}
	id := gjson.GetBytes(raw, "messages.0.id").String()
	if id == "" {
		logging.Ctx(ctx).Warn().Str("provider", "whatsapp").Msg("accepted response carried no message id")
	}
	return port.Receipt{ProviderMessageID: id}, nil
}
