package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classifier is an optional second moderation signal ORed with the pattern
// lists. Implementations must fail open: an unreachable classifier means
// "not flagged", never a blocked turn.
type Classifier interface {
	Flagged(ctx context.Context, message string) (bool, error)
}

// HTTPClassifier calls an external moderation endpoint.
type HTTPClassifier struct {
	endpoint string
	client   *http.Client
}

var _ Classifier = (*HTTPClassifier)(nil)

func NewHTTPClassifier(endpoint string) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type classifyRequest struct {
	Input string `json:"input"`
}

type classifyResponse struct {
	Flagged bool `json:"flagged"`
}

func (c *HTTPClassifier) Flagged(ctx context.Context, message string) (bool, error) {
	payload, err := json.Marshal(classifyRequest{Input: message})
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("classifier error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("unmarshal response: %w", err)
	}
	return parsed.Flagged, nil
}
