package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *BrevoClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewBrevoClient("test-key", Recipient{Email: "noreply@aidosk.dev", Name: "Brief Bot"})
	require.NoError(t, err)
	c.baseURL = srv.URL
	return c
}

func TestBrevoSend(t *testing.T) {
	var got sendEmailRequest
	var gotPath, gotKey string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"<msg-1>"}`))
	})

	msg := Message{
		To:      []Recipient{{Email: "admin@aidosk.dev", Name: "Aidos"}},
		Subject: "New project brief",
		HTML:    "<p>hello</p>",
		ReplyTo: &Recipient{Email: "dana@acme.kz", Name: "Dana"},
		Attachments: []Attachment{
			{Name: "brief.pdf", Content: []byte("%PDF fake")},
		},
	}

	err := client.Send(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "/v3/smtp/email", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "noreply@aidosk.dev", got.Sender.Email)
	assert.Equal(t, "admin@aidosk.dev", got.To[0].Email)
	assert.Equal(t, "dana@acme.kz", got.ReplyTo.Email)
	assert.Equal(t, "New project brief", got.Subject)
	assert.Equal(t, "<p>hello</p>", got.HTMLContent)
	require.Len(t, got.Attachment, 1)
	assert.Equal(t, "brief.pdf", got.Attachment[0].Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF fake")), got.Attachment[0].Content)
}

func TestBrevoSendSurfacesProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	})

	err := client.Send(context.Background(), Message{
		To:      []Recipient{{Email: "admin@aidosk.dev"}},
		Subject: "x",
	})

	var pErr *ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, http.StatusUnauthorized, pErr.StatusCode)
	assert.Contains(t, pErr.Body, "Key not found")
}

func TestBrevoSendRequiresRecipients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	err := client.Send(context.Background(), Message{Subject: "x"})
	assert.Error(t, err)
}

func TestNewBrevoClientRequiresCredentials(t *testing.T) {
	_, err := NewBrevoClient("", Recipient{Email: "noreply@aidosk.dev"})
	assert.Error(t, err)

	_, err = NewBrevoClient("key", Recipient{})
	assert.Error(t, err)
}
