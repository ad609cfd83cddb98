package recap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/repscope/internal/analytics"
	"github.com/claude/repscope/internal/config"
)

// Narrator turns a weekly stats object into a short human-readable recap.
// Implementations are stateless; the only side effect is the external call.
type Narrator interface {
	Summarize(ctx context.Context, stats *analytics.WeeklyStats) (string, error)
}

const systemPrompt = "You are a concise fitness coach. Given weekly training stats, write a short, " +
	"motivational summary (100-160 words). Be concrete: mention body parts hit/missed, standout " +
	"lifts, and week-over-week trend. End with a positive, actionable nudge for next week. Avoid emojis."

// LLMNarrator calls an OpenAI-compatible chat-completions endpoint.
type LLMNarrator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewLLMNarrator creates a narrator from LLM config.
func NewLLMNarrator(cfg config.LLMConfig) *LLMNarrator {
	return &LLMNarrator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Summarize sends the stats object to the model and returns the recap text.
func (n *LLMNarrator) Summarize(ctx context.Context, stats *analytics.WeeklyStats) (string, error) {
	if n.apiKey == "" {
		return "", fmt.Errorf("llm api key not configured")
	}

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("encoding stats: %w", err)
	}

	reqBody := chatRequest{
		Model: n.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Stats JSON:\n" + string(statsJSON) + "\n\nWrite the summary now."},
		},
		Temperature: 0.7,
		MaxTokens:   250,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		n.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling llm: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading llm response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("parsing llm response: %w", err)
	}
	if chat.Error != nil {
		return "", fmt.Errorf("llm error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}
