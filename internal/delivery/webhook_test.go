package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ridgecast/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhook_Send(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	wh := NewWebhook(2*time.Second, zap.NewNop(), observability.NewMetricsForTesting())

	report := "*Tomorrow Morning*\nTrailhead: 42°F, 60% humidity"
	require.NoError(t, wh.Send(context.Background(), server.URL, report))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)

	var decoded struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, report, decoded.Text)
}

func TestWebhook_Send_RejectedDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer server.Close()

	wh := NewWebhook(2*time.Second, zap.NewNop(), observability.NewMetricsForTesting())

	err := wh.Send(context.Background(), server.URL, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Contains(t, err.Error(), "invalid_payload")
}

func TestWebhook_Send_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use

	wh := NewWebhook(time.Second, zap.NewNop(), observability.NewMetricsForTesting())

	err := wh.Send(context.Background(), server.URL, "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook request failed")
}
