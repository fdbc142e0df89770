package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoBaseURL = "https://api.brevo.com"

// ProviderError carries the provider's status code and response body so a
// dispatch failure is diagnosable and distinguishable from validation.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider returned status %d: %s", e.StatusCode, e.Body)
}

// BrevoClient sends transactional email through the Brevo REST API.
type BrevoClient struct {
	baseURL string
	apiKey  string
	from    Recipient
	http    *http.Client
}

func NewBrevoClient(apiKey string, from Recipient) (*BrevoClient, error) {
	if apiKey == "" {
		return nil, errors.New("brevo: api key is required")
	}
	if from.Email == "" {
		return nil, errors.New("brevo: sender email is required")
	}
	return &BrevoClient{
		baseURL: brevoBaseURL,
		apiKey:  apiKey,
		from:    from,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
}

type sendEmailRequest struct {
	Sender      Recipient         `json:"sender"`
	To          []Recipient       `json:"to"`
	ReplyTo     *Recipient        `json:"replyTo,omitempty"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

func (c *BrevoClient) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("brevo: message has no recipients")
	}

	payload := sendEmailRequest{
		Sender:      c.from,
		To:          msg.To,
		ReplyTo:     msg.ReplyTo,
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	for _, att := range msg.Attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{
			Name:    att.Name,
			Content: base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/smtp/email", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}
