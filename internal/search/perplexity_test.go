// internal/search/perplexity_test.go

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload chatQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "sonar", payload.Model)
		assert.Equal(t, 1024, payload.MaxTokens)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "system", payload.Messages[0].Role)
		assert.Equal(t, "best striper lures this fall", payload.Messages[1].Content)

		w.Write([]byte(`{"choices": [{"index": 0, "message": {"role": "assistant", "content": "Try a white bucktail jig."}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	answer, err := client.Ask(context.Background(), "best striper lures this fall")
	require.NoError(t, err)
	assert.Equal(t, "Try a white bucktail jig.", answer)
}

func TestAsk_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	_, err := client.Ask(context.Background(), "anything")
	require.Error(t, err)
}

func TestAsk_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL)

	_, err := client.Ask(context.Background(), "anything")
	require.Error(t, err)
}
