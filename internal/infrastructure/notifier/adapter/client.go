package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"

	"go-wedding/internal/infrastructure/breaker"
	"go-wedding/internal/infrastructure/notifier/port"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// httpClient performs provider calls behind a circuit breaker. Permanent
// rejections do not count against the breaker.
type httpClient struct {
	provider string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
}

func newHTTPClient(provider string, hc *http.Client) *httpClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &httpClient{
		provider: provider,
		http:     hc,
		cb: breaker.New[[]byte](breaker.Config{
			Name:         provider,
			IsSuccessful: func(err error) bool { return err == nil || port.IsPermanent(err) },
		}),
	}
}

// do sends req and returns the response body of a 2xx answer. errPath is the
// gjson path of the provider's error message.
func (c *httpClient) do(ctx context.Context, build func(ctx context.Context) (*http.Request, error), errPath string) ([]byte, error) {
	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, &port.ProviderError{Provider: c.provider, Permanent: true, Message: err.Error()}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, &port.ProviderError{Provider: c.provider, Message: err.Error()}
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, &port.ProviderError{Provider: c.provider, StatusCode: resp.StatusCode, Message: err.Error()}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg := gjson.GetBytes(raw, errPath).String()
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			return nil, port.Classify(c.provider, resp.StatusCode, msg)
		}
		return raw, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &port.ProviderError{Provider: c.provider, Message: fmt.Sprintf("circuit breaker: %v", err)}
	}
	return body, err
}
