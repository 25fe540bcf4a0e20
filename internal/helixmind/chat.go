package helixmind

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// chatSystemPrompt frames every assistant conversation
const chatSystemPrompt = "You are a helpful bioinformatics assistant."

// ChatClient forwards prompts to a hosted chat-completions endpoint
// (Together.ai or any OpenAI-compatible service).
type ChatClient struct {
	// full URL of the chat completions endpoint
	url string

	// the hosted model to prompt
	model string

	// bearer token for the endpoint
	apiKey string

	hc *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewChatClient makes a chat assistant client
func NewChatClient(url, model, apiKey string, timeout time.Duration) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("chat API key not set in environment or .env file")
	}

	return &ChatClient{
		url:    url,
		model:  model,
		apiKey: apiKey,
		hc:     &http.Client{Timeout: timeout},
	}, nil
}

// Ask sends prompt to the assistant and returns its reply
func (c *ChatClient) Ask(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unexpected chat API response format: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("unexpected chat API response format: no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
