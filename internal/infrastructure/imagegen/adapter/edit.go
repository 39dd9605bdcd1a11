package adapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"

	"go-wedding/internal/infrastructure/breaker"
	"go-wedding/internal/infrastructure/imagegen/port"
)

const maxResponseBytes = 64 << 20

type Config struct {
	APIBase    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// EditClient calls an OpenAI compatible /images/edits endpoint.
type EditClient struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
}

func NewEditClient(cfg Config) *EditClient {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 2 * time.Minute}
	}
	return &EditClient{
		endpoint: strings.TrimRight(cfg.APIBase, "/") + "/images/edits",
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     hc,
		cb: breaker.New[[]byte](breaker.Config{
			Name:         "imagegen",
			Timeout:      time.Minute,
			IsSuccessful: func(err error) bool { return err == nil || port.IsRejected(err) },
		}),
	}
}

var _ port.Editor = (*EditClient)(nil)

func (c *EditClient) Edit(ctx context.Context, req port.EditRequest) ([]byte, error) {
	body, contentType, err := c.form(req)
	if err != nil {
		return nil, err
	}
	raw, err := c.cb.Execute(func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, &port.Error{Rejected: true, Message: err.Error()}
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", contentType)

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, &port.Error{Message: err.Error()}
		}
		defer resp.Body.Close()
		out, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, &port.Error{StatusCode: resp.StatusCode, Message: err.Error()}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg := gjson.GetBytes(out, "error.message").String()
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			rejected := resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests
			return nil, &port.Error{StatusCode: resp.StatusCode, Rejected: rejected, Message: msg}
		}
		return out, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &port.Error{Message: fmt.Sprintf("circuit breaker: %v", err)}
	}
	if err != nil {
		return nil, err
	}

	encoded := gjson.GetBytes(raw, "data.0.b64_json").String()
	if encoded == "" {
		return nil, &port.Error{Message: "response carried no image"}
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &port.Error{Message: "undecodable image: " + err.Error()}
	}
	return png, nil
}

func (c *EditClient) form(req port.EditRequest) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := "base.png"
	if req.ContentType == "image/jpeg" {
		filename = "base.jpg"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", req.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, "", err
	}
	for _, f := range [][2]string{
		{"prompt", req.Prompt},
		{"model", c.model},
		{"response_format", "b64_json"},
	} {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
