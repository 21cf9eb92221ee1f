package gemini

import (
	"Donation-Hub/domain"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  A warm wool coat.  "}]}}]}`))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "secret", Model: "test-model", BaseURL: server.URL + "/"})
	text, err := svc.Describe(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "A warm wool coat.", text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Empty(t, gotQuery)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	inline := parts[1].(map[string]any)["inline_data"].(map[string]any)
	assert.Equal(t, "image/png", inline["mime_type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), inline["data"])
}

func TestDescribeProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "k", Model: "m", BaseURL: server.URL})
	_, err := svc.Describe(context.Background(), []byte("img"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestDescribeEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "k", Model: "m", BaseURL: server.URL})
	_, err := svc.Describe(context.Background(), []byte("img"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrGeminiFailed)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDescribeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	svc := NewGeminiService(Config{APIKey: "very-private-key", Model: "m", BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := svc.Describe(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotContains(t, err.Error(), "very-private-key")
	assert.NotContains(t, err.Error(), server.URL)
}

func TestDescribeUnreachableHidesKey(t *testing.T) {
	svc := NewGeminiService(Config{APIKey: "very-private-key", Model: "m", BaseURL: "http://127.0.0.1:1"})
	_, err := svc.Describe(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotContains(t, err.Error(), "very-private-key")
}

func TestDescribeRequiresKey(t *testing.T) {
	svc := NewGeminiService(Config{Model: "m", BaseURL: "http://127.0.0.1:1"})
	_, err := svc.Describe(context.Background(), []byte("img"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
