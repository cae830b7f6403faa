package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier_Notify(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewSlackNotifier(server.URL)
	err := n.Notify(context.Background(), "squashbench: done")
	require.NoError(t, err)
	assert.Equal(t, "squashbench: done", received["text"])
}

func TestSlackNotifier_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewSlackNotifier(server.URL).Notify(context.Background(), "hi")
	assert.ErrorContains(t, err, "failed to send slack notification")
}

func TestSlackNotifier_NoURL(t *testing.T) {
	err := (&SlackNotifier{}).Notify(context.Background(), "hi")
	assert.ErrorContains(t, err, "not configured")
}

func TestSlackNotifier_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := &SlackNotifier{WebhookURL: server.URL}
	assert.Error(t, n.Notify(ctx, "hi"))
}
