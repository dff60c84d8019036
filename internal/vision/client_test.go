package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		require.Len(t, req.Messages[0].Content, 2)
		assert.True(t, strings.HasPrefix(req.Messages[0].Content[1].ImageURL.URL, "data:image/png;base64,"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestClientExtract(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, "Tomato, Garlic , basil")

	ingredients, err := newTestClient(srv.URL).Extract(context.Background(), pngImage)

	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "garlic", "basil"}, ingredients)
}

func TestClientExtract_NoIngredients(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, " , ")

	_, err := newTestClient(srv.URL).Extract(context.Background(), pngImage)

	assert.ErrorIs(t, err, ErrNoIngredientsDetected)
}

func TestClientExtract_UpstreamError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, "")

	_, err := newTestClient(srv.URL).Extract(context.Background(), pngImage)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoIngredientsDetected)
	assert.Contains(t, err.Error(), "500")
}

func TestClientExtract_InvalidImage(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.Extract(context.Background(), []byte("not an image"))

	assert.ErrorIs(t, err, ErrInvalidImage)
}
