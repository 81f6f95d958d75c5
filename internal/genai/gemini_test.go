package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"greenverify/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": text},
					},
				},
			},
		},
	}
}

func newTestGemini(t *testing.T, baseURL string, maxRetries int) *GeminiClient {
	t.Helper()
	c, err := NewGemini(GeminiOptions{
		APIKey:     "test-key",
		Model:      "gemini-test",
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
	}, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestGeminiClient_GenerateText(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(geminiReply("Four stars reflect strong efficiency."))
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL, 0)
	text, err := c.GenerateText(context.Background(), "Why this rating?")
	require.NoError(t, err)
	assert.Equal(t, "Four stars reflect strong efficiency.", text)
	assert.Equal(t, "Why this rating?", gotPrompt)
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL, 0)
	_, err := c.GenerateText(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(geminiReply("recovered"))
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL, 3)
	text, err := c.GenerateText(context.Background(), "retry me")
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGeminiClient_ExhaustedRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL, 1)
	_, err := c.GenerateText(context.Background(), "never works")
	assert.ErrorIs(t, err, ErrCallFailed)
}

func TestGeminiClient_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(geminiReply("too late"))
	}))
	defer srv.Close()

	c := newTestGemini(t, srv.URL, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GenerateText(ctx, "slow")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGeminiClient_ResolveModel_FallsThroughCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First candidate name fails, later ones answer.
		if r.URL.Path == "/v1beta/models/gemini-2.5-flash:generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(geminiReply("ok"))
	}))
	defer srv.Close()

	c, err := NewGemini(GeminiOptions{APIKey: "k", BaseURL: srv.URL}, logger.Nop())
	require.NoError(t, err)

	model, err := c.ResolveModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", model)
}

func TestNewGemini_RequiresAPIKey(t *testing.T) {
	_, err := NewGemini(GeminiOptions{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
