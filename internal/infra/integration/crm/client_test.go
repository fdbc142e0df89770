package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosk/devfolio-api/internal/infra/queue"
)

func TestPushBrief(t *testing.T) {
	var got pushBriefRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")
	evt := queue.BriefSubmittedEvent{
		BriefID:      "brief-1",
		ContactName:  "Dana",
		ContactEmail: "dana@acme.kz",
		SubmittedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, client.PushBrief(context.Background(), evt))

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "devfolio", got.Source)
	assert.Equal(t, "brief-1", got.LeadID)
	assert.Equal(t, "dana@acme.kz", got.ContactEmail)
}

func TestPushBriefSurfacesWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.PushBrief(context.Background(), queue.BriefSubmittedEvent{BriefID: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream broke")
}
