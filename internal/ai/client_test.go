package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradepilot-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{AIBaseURL: srv.URL, AIAPIKey: "test-key", AIModel: "test-model"}
	return New(cfg, zap.NewNop()), srv
}

func completionResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestChat(t *testing.T) {
	var gotBody []byte
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		gotBody, _ = io.ReadAll(r.Body)
		io.WriteString(w, completionResponse("SOL looks range-bound today."))
	})

	resp, err := c.Chat(context.Background(), "how is SOL doing?", map[string]any{"wallet": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "SOL looks range-bound today.", resp)

	var req chatRequest
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 3)
	assert.Equal(t, "system", req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "Session context")
	assert.Equal(t, "how is SOL doing?", req.Messages[2].Content)
}

func TestChatNoContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Len(t, req.Messages, 2)
		io.WriteString(w, completionResponse("hi"))
	})
	_, err := c.Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
}

func TestChatUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	})
	_, err := c.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestChatMissingContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[]}`)
	})
	_, err := c.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
}

func TestSuggestions(t *testing.T) {
	content := "Here you go:\n```json\n[{\"action\":\"HOLD\",\"token\":\"SOL\",\"reason\":\"steady\",\"confidence\":0.8,\"riskLevel\":\"medium\"}]\n```"
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, completionResponse(content))
	})

	got, err := c.Suggestions(context.Background(), json.RawMessage(`{"tokens":[]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "HOLD", got[0].Action)
	assert.Equal(t, "SOL", got[0].Token)
	assert.InDelta(t, 0.8, got[0].Confidence, 1e-9)
}

func TestParseSuggestions(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
		wantLen int
	}{
		{"bare array", `[{"action":"BUY","token":"JUP","reason":"momentum","confidence":0.7,"riskLevel":"high"}]`, false, 1},
		{"prose wrapped", `Sure! [{"action":"SELL","token":"BONK","reason":"overheated","confidence":0.5,"riskLevel":"high"}] Hope that helps.`, false, 1},
		{"no array", "I cannot help with that.", true, 0},
		{"malformed", `[{"action":`, true, 0},
		{"empty array", `[]`, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSuggestions(tc.content)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tc.wantLen)
		})
	}
}

func TestFallbackIsFixedPair(t *testing.T) {
	a := Fallback()
	require.Len(t, a, 2)

	// mutating one copy must not leak into the next
	a[0].Token = "mutated"
	b := Fallback()
	assert.NotEqual(t, "mutated", b[0].Token)
	assert.Equal(t, Fallback(), b)
}
