// Package llm is a minimal client for an OpenAI-compatible chat
// completions API. It performs a single request per call; retries are the
// caller's decision.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"chatads/internal/models"
)

// ErrInvalidAPIKey is returned when the provider rejects the API key.
var ErrInvalidAPIKey = errors.New("invalid API key")

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

// Client is an HTTP client for chat completions.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Client for the given provider base URL and model.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
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
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the conversation and returns the assistant reply.
// Ad turns are sent with the assistant role so the provider never sees an
// unknown role.
func (c *Client) ChatCompletion(ctx context.Context, msgs []models.Message) (string, error) {
	reqMsgs := make([]chatMessage, 0, len(msgs))
	for _, m := range msgs {
		role := m.Role
		if role == models.RoleAd {
			role = models.RoleAssistant
		}
		reqMsgs = append(reqMsgs, chatMessage{Role: role, Content: m.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    reqMsgs,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrInvalidAPIKey
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return result.Choices[0].Message.Content, nil
}
