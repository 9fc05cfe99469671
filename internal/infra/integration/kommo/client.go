package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://ligueoutreach.kommo.com/api/v4"
	MeetingBookedTag  = "meeting_booked"
	errBodyPreviewLen = 512
)

var ErrNotConfigured = errors.New("kommo api token not configured")

type Client struct {
	apiToken string
	baseURL  string
	statusID int
	http     *http.Client
	logger   *zap.Logger
}

func NewClient(apiToken, baseURL string, statusID int, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		statusID: statusID,
		http:     &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// SyncMeetingBooked opens a deal for a lead that booked a meeting.
func (c *Client) SyncMeetingBooked(ctx context.Context, event queue.LeadEventPayload) error {
	name := event.FullName()
	if name == "" {
		name = event.Email
	}
	_, err := c.CreateDeal(ctx, CreateDealInput{
		ContactName: name,
		Email:       event.Email,
		CompanyName: event.CompanyName,
		Tag:         MeetingBookedTag,
	})
	return err
}

func (c *Client) CreateDeal(ctx context.Context, input CreateDealInput) (int, error) {
	if c.apiToken == "" {
		return 0, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to find or create contact: %w", err)
	}

	title := input.ContactName
	if input.CompanyName != "" {
		title = fmt.Sprintf("%s - %s", input.ContactName, input.CompanyName)
	}
	deal := map[string]any{
		"name": title,
		"_embedded": map[string]any{
			"tags":     []map[string]any{{"name": input.Tag}},
			"contacts": []map[string]any{{"id": contactID}},
		},
	}
	if c.statusID > 0 {
		deal["status_id"] = c.statusID
	}

	var result embeddedLeads
	if err := c.do(ctx, http.MethodPost, "/leads", []map[string]any{deal}, &result); err != nil {
		return 0, fmt.Errorf("failed to create deal: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return 0, fmt.Errorf("deal not created")
	}

	dealID := result.Embedded.Leads[0].ID
	c.logger.Info("kommo deal created", zap.Int("deal_id", dealID), zap.String("email", input.Email))
	return dealID, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, input CreateDealInput) (int, error) {
	contactID, err := c.findContactByEmail(ctx, input.Email)
	if err != nil {
		return 0, err
	}
	if contactID > 0 {
		return contactID, nil
	}
	return c.createContact(ctx, input)
}

// findContactByEmail returns 0 without error when no contact matches.
func (c *Client) findContactByEmail(ctx context.Context, email string) (int, error) {
	var result embeddedContacts
	path := "/contacts?query=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return 0, fmt.Errorf("failed to search contact: %w", err)
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, nil
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, input CreateDealInput) (int, error) {
	contact := []map[string]any{
		{
			"name": input.ContactName,
			"custom_fields_values": []map[string]any{
				{
					"field_code": "EMAIL",
					"values":     []map[string]any{{"value": input.Email, "enum_code": "WORK"}},
				},
			},
		},
	}

	var result embeddedContacts
	if err := c.do(ctx, http.MethodPost, "/contacts", contact, &result); err != nil {
		return 0, fmt.Errorf("failed to create contact: %w", err)
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("contact id missing in response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

// do sends a JSON request and decodes the response into out. Kommo answers
// 204 to searches with no match, which leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > errBodyPreviewLen {
			raw = raw[:errBodyPreviewLen]
		}
		return fmt.Errorf("kommo status %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
