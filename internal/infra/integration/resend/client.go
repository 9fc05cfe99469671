package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const DefaultBaseURL = "https://api.resend.com"

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one email to the Resend API. Transport and API errors are
// returned as a failed DeliveryResult.
func (c *Client) Send(ctx context.Context, email entity.OutboundEmail) entity.DeliveryResult {
	if c.apiKey == "" {
		return entity.DeliveryFailed("resend api key not configured")
	}
	if email.ToEmail == "" {
		return entity.DeliveryFailed("recipient email is required")
	}

	payload := sendEmailRequest{
		From:    email.From(),
		To:      []string{email.ToEmail},
		Subject: email.Subject,
		HTML:    email.HTMLBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return entity.DeliveryFailed("resend encode: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return entity.DeliveryFailed("resend request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return entity.DeliveryFailed("resend request failed: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return entity.DeliveryFailed("resend send failed: status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return entity.DeliveryFailed("resend send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out sendEmailResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return entity.DeliveryFailed("resend decode: %v", err)
	}
	if out.ID == "" {
		return entity.DeliveryFailed("resend response missing id")
	}

	return entity.DeliveryResult{Success: true, MessageID: out.ID}
}

// Ping reports whether the API key is accepted. Used by the health check.
func (c *Client) Ping(ctx context.Context) error {
	if c.apiKey == "" {
		return fmt.Errorf("resend api key not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domains", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("resend rejected api key: status %d", resp.StatusCode)
	}
	return nil
}
