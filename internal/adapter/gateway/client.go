// Package gateway holds the JSON-over-HTTP plumbing shared by the upstream
// clients in its subpackages.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"ecommerce-transactions/internal/core/ports"
)

// maxLoggedBody bounds the upstream body kept on a GatewayError.
const maxLoggedBody = 2048

// Timeouts configures an upstream HTTP client.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
}

// NewHTTPClient builds a pooled client. Connect bounds dialing, Read bounds
// the wait for response headers.
func NewHTTPClient(t Timeouts) *http.Client {
	dialer := &net.Dialer{Timeout: t.Connect, KeepAlive: 30 * time.Second}
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   t.Connect,
			ResponseHeaderTimeout: t.Read,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// Caller sends JSON requests to one upstream.
type Caller struct {
	Name   string
	Client *http.Client
}

// PostJSON posts in as JSON and decodes a 2xx answer into out (skipped when
// out is nil). Non-2xx answers and transport failures become *ports.GatewayError.
func (c Caller) PostJSON(ctx context.Context, url string, headers map[string]string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", c.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: building request: %w", c.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return &ports.GatewayError{Gateway: c.Name, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ports.GatewayError{Gateway: c.Name, StatusCode: resp.StatusCode, Timeout: isTimeout(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ports.GatewayError{
			Gateway:    c.Name,
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &ports.GatewayError{
			Gateway:    c.Name,
			StatusCode: resp.StatusCode,
			Body:       truncate(respBody),
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody])
	}
	return string(b)
}
