package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth-assistant/internal/common/config"
	"finhealth-assistant/internal/common/logger"
)

func testConfig(baseURL string) config.CompletionConfig {
	return config.CompletionConfig{
		Enabled:    true,
		BaseURL:    baseURL,
		Model:      "gpt-4o-mini",
		Timeout:    2000,
		MaxRetries: 2,
		MaxTokens:  50,
	}
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		w.Write([]byte(completionBody("likely a muscle strain")))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	reply, err := client.Complete(context.Background(), "you are a triage helper", "my back hurts")
	require.NoError(t, err)
	assert.Equal(t, "likely a muscle strain", reply)
}

func TestCompleteRetriesOnServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(completionBody("ok now")))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	reply, err := client.Complete(context.Background(), "sys", "msg")
	require.NoError(t, err)
	assert.Equal(t, "ok now", reply)
	assert.Equal(t, 3, calls)
}

func TestCompleteExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), "sys", "msg")
	require.Error(t, err)
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(completionBody("too late")))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 50
	cfg.MaxRetries = 0

	client := NewClient(cfg, logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), "sys", "msg")
	require.Error(t, err)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 0

	client := NewClient(cfg, logger.NewTestLogger(t))
	for i := 0; i < 5; i++ {
		_, err := client.Complete(context.Background(), "sys", "msg")
		require.Error(t, err)
	}
	require.Equal(t, 5, calls)

	// Breaker is open now, the service is no longer contacted.
	_, err := client.Complete(context.Background(), "sys", "msg")
	require.Error(t, err)
	assert.Equal(t, 5, calls)
}

func TestBreakerClosesAfterRecovery(t *testing.T) {
	b := newBreaker(2, 10*time.Millisecond)
	failure := assert.AnError

	b.record(failure)
	b.record(failure)
	assert.False(t, b.allow())

	time.Sleep(15 * time.Millisecond)
	assert.True(t, b.allow())
	b.record(nil)
	assert.True(t, b.allow())
	assert.Equal(t, breakerClosed, b.state)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewTestLogger(t))
	_, err := client.Complete(context.Background(), "sys", "msg")
	require.Error(t, err)
}
