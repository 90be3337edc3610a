package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/observability"
)

const (
	generateTemperature = 0.7
	generateMaxTokens   = 8000
	requestTimeout      = 90 * time.Second
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GroqClient talks to Groq's OpenAI-compatible chat-completions endpoint.
// Any other OpenAI-compatible provider works by pointing BaseURL at it.
type GroqClient struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

func NewGroqClient(baseURL, apiKey, model string) *GroqClient {
	return &GroqClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// Generate prompts the model for a 30-day calendar and validates the reply.
// It makes exactly one attempt; a malformed or incomplete calendar is an
// error, never silently patched up.
func (g *GroqClient) Generate(ctx context.Context, in Input) (*models.GeneratedCalendar, error) {
	start := time.Now()

	content, err := g.complete(ctx, in)
	if err != nil {
		observability.ObserveGeneration("api_error", start)
		return nil, err
	}

	cal, err := decodeCalendar(content)
	if err != nil {
		observability.ObserveGeneration("parse_error", start)
		return nil, err
	}

	if err := Validate(cal); err != nil {
		observability.ObserveGeneration("invalid", start)
		return nil, fmt.Errorf("model returned invalid calendar: %w", err)
	}

	observability.ObserveGeneration("ok", start)
	return cal, nil
}

func (g *GroqClient) complete(ctx context.Context, in Input) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(in)},
		},
		Temperature: generateTemperature,
		MaxTokens:   generateMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("chat completion failed (status %d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("chat completion failed with status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
