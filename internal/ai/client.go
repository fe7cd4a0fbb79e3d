// Package ai talks to an OpenAI-compatible chat-completion endpoint for the
// trading copilot: free-form chat plus structured portfolio suggestions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tradepilot-api/internal/config"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const systemPrompt = "You are TradePilot, a crypto trading copilot. " +
	"Answer concisely about portfolios, tokens and market conditions. " +
	"Never promise returns; always mention risk where relevant."

type Client struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
	model   string
	log     *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.AIBaseURL,
		apiKey:  cfg.AIAPIKey,
		model:   cfg.AIModel,
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, Temperature: 0.4})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai http %d: %s", resp.StatusCode, string(raw))
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", fmt.Errorf("ai response missing message content")
	}
	return content.String(), nil
}

// Chat answers a user message; extra, when non-nil, is serialized and handed
// to the model as session context.
func (c *Client) Chat(ctx context.Context, message string, extra any) (string, error) {
	msgs := []chatMessage{{Role: "system", Content: systemPrompt}}
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil && string(b) != "null" {
			msgs = append(msgs, chatMessage{Role: "system", Content: "Session context:\n" + string(b)})
		}
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: message})
	return c.complete(ctx, msgs)
}

// Suggestions asks the model for advisory records over a portfolio snapshot.
// The model is instructed to answer with bare JSON, but answers wrapped in
// prose or code fences are tolerated.
func (c *Client) Suggestions(ctx context.Context, portfolio json.RawMessage) ([]Suggestion, error) {
	prompt := "Given this portfolio snapshot, respond with ONLY a JSON array of " +
		"suggestion objects shaped {\"action\",\"token\",\"reason\",\"confidence\",\"riskLevel\"} " +
		"where action is BUY, SELL, HOLD or REBALANCE, confidence is 0..1 and " +
		"riskLevel is low, medium or high.\n\nPortfolio:\n" + string(portfolio)

	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}
	return parseSuggestions(content)
}

// parseSuggestions pulls the first JSON array out of the model output.
func parseSuggestions(content string) ([]Suggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no suggestion array in ai output")
	}
	arr := content[start : end+1]
	if !gjson.Valid(arr) {
		return nil, fmt.Errorf("malformed suggestion array in ai output")
	}
	var out []Suggestion
	if err := json.Unmarshal([]byte(arr), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty suggestion array in ai output")
	}
	return out, nil
}
