package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dltpay/paygate/internal/pkg/env"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 64 * 1024
)

// Event is the envelope posted to every configured partner endpoint.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Result captures one delivery attempt. Attempts are independent; one
// destination failing never suppresses the attempt on another.
type Result struct {
	URL      string `json:"url"`
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DeliveryError is returned when every configured destination rejected the
// event. It keeps the per-destination results for diagnostics.
type DeliveryError struct {
	Results []Result
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("all %d webhook deliveries failed", len(e.Results))
}

// Relay posts webhook events to the configured partner endpoints.
type Relay struct {
	destinations []string
	client       *http.Client
}

// New creates a relay for a fixed destination list.
func New(destinations []string) *Relay {
	return &Relay{
		destinations: destinations,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewFromEnv builds the relay from EXTERNAL_WEBHOOK_URLS (comma separated),
// falling back to the single EXTERNAL_WEBHOOK_URL.
func NewFromEnv() *Relay {
	raw := env.GetEnv("EXTERNAL_WEBHOOK_URLS", "")
	if raw == "" {
		raw = env.GetEnv("EXTERNAL_WEBHOOK_URL", "")
	}

	var destinations []string
	for _, url := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			destinations = append(destinations, trimmed)
		}
	}
	return New(destinations)
}

// Destinations returns the configured endpoint list.
func (r *Relay) Destinations() []string {
	return r.destinations
}

// Dispatch posts the event to every destination and reports one Result per
// attempt. Delivery is best-effort: the aggregate counts as successful when
// at least one destination accepted the event. With zero destinations there
// is nothing to fail and Dispatch returns an empty result set. When every
// destination fails, the results are returned together with a
// *DeliveryError. Dispatch never retries; that decision stays with the
// caller.
func (r *Relay) Dispatch(ctx context.Context, event Event) ([]Result, error) {
	results := make([]Result, 0, len(r.destinations))
	if len(r.destinations) == 0 {
		return results, nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal relay event: %w", err)
	}

	anySuccess := false
	for _, url := range r.destinations {
		result := r.deliver(ctx, url, body)
		if result.Success {
			anySuccess = true
		}
		results = append(results, result)
	}

	if !anySuccess {
		return results, &DeliveryError{Results: results}
	}
	return results, nil
}

func (r *Relay) deliver(ctx context.Context, url string, body []byte) Result {
	result := Result{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Error = fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(respBody))
		return result
	}

	result.Success = true
	result.Response = string(respBody)
	return result
}
