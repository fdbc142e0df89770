package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aidosk/devfolio-api/internal/infra/queue"
)

// Client posts submitted briefs to the CRM inbound webhook.
type Client struct {
	webhookURL string
	token      string
	http       *http.Client
}

func NewClient(webhookURL, token string) *Client {
	return &Client{
		webhookURL: webhookURL,
		token:      token,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type pushBriefRequest struct {
	Source       string    `json:"source"`
	LeadID       string    `json:"lead_id"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (c *Client) PushBrief(ctx context.Context, evt queue.BriefSubmittedEvent) error {
	payload := pushBriefRequest{
		Source:       "devfolio",
		LeadID:       evt.BriefID,
		ContactName:  evt.ContactName,
		ContactEmail: evt.ContactEmail,
		SubmittedAt:  evt.SubmittedAt,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("crm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("crm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("crm: webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
