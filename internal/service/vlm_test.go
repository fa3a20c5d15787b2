package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tannerdj/wokelens/internal/prompts"
)

func newVLMTestServer(t *testing.T, handler http.HandlerFunc) *VLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewVLMService(&VLMConfig{
		Model:   "gpt-4.1-nano-2025-04-14",
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

func completionResponse(content string) string {
	return `{"choices":[{"message":{"content":` + strJSON(content) + `}}]}`
}

func strJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestVLMService_DescribeImage(t *testing.T) {
	var captured openAIRequest
	svc := newVLMTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("  A description of the photo.  ")))
	})

	got, err := svc.DescribeImage(context.Background(), []byte("fake-image-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "A description of the photo.", got, "whitespace trimmed")

	assert.Equal(t, "gpt-4.1-nano-2025-04-14", captured.Model)
	assert.Equal(t, 128, captured.MaxTokens, "default token budget")
	require.Len(t, captured.Messages, 1)
	require.Len(t, captured.Messages[0].Content, 2)

	// The image part carries a base64 data URI with the given MIME type.
	raw, err := json.Marshal(captured.Messages[0].Content[1])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "data:image/png;base64,")
}

func TestVLMService_DescribeImage_EmptyCompletion(t *testing.T) {
	svc := newVLMTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("   ")))
	})

	got, err := svc.DescribeImage(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, prompts.EmptyDescription, got)
}

func TestVLMService_DescribeImage_RateLimited(t *testing.T) {
	svc := newVLMTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))
	})

	_, err := svc.DescribeImage(context.Background(), []byte("img"), "image/jpeg")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate_limit_exceeded", apiErr.Code)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
}

func TestVLMService_DescribeImage_QuotaError(t *testing.T) {
	svc := newVLMTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	})

	_, err := svc.DescribeImage(context.Background(), []byte("img"), "image/jpeg")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "insufficient_quota", apiErr.Code)
}

func TestVLMService_DescribeImage_NoChoices(t *testing.T) {
	svc := newVLMTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := svc.DescribeImage(context.Background(), []byte("img"), "image/jpeg")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, strings.Contains(apiErr.Message, "no choices"))
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "boom", (&APIError{StatusCode: 500, Message: "boom"}).Error())
	assert.Equal(t, "VLM API returned HTTP 502", (&APIError{StatusCode: 502}).Error())
}
