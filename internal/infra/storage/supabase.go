package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseClient uploads brief attachments to a Supabase Storage bucket.
// Writes use the service-role key; the anon key rides along as the project
// apikey header. Objects are served back over the public URL.
type SupabaseClient struct {
	projectURL string
	anonKey    string
	serviceKey string
	bucket     string
	http       *http.Client
}

func NewSupabaseClient(projectURL, anonKey, serviceKey, bucket string) (*SupabaseClient, error) {
	if projectURL == "" || anonKey == "" || serviceKey == "" {
		return nil, errors.New("supabase: project url and both keys are required")
	}
	if bucket == "" {
		bucket = "brief-attachments"
	}
	return &SupabaseClient{
		projectURL: strings.TrimRight(projectURL, "/"),
		anonKey:    anonKey,
		serviceKey: serviceKey,
		bucket:     bucket,
		http:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *SupabaseClient) Upload(ctx context.Context, name string, content []byte) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.projectURL, c.bucket, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("supabase: upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("supabase: upload returned status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.projectURL, c.bucket, name), nil
}
