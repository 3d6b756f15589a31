package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ============================================================================
// OLLAMA CLIENT — The external language-model collaborator
// ============================================================================
// The rest of the pipeline treats this as an opaque function: prompt in,
// text out, may fail. Every call site converts a failure into its own
// documented fallback — nothing here is retried.
//
// This is the ONLY package that makes external API calls.
// ============================================================================

// Client is the chat contract consumed by the classifier and synthesizer.
type Client interface {
	Chat(prompt string) (string, error)
	Model() string
}

// Config configures the Ollama endpoint and model.
type Config struct {
	Host  string // base URL, e.g. "http://127.0.0.1:11434"
	Model string // e.g. "llama3.2"
}

// OllamaClient implements Client against a local Ollama server.
type OllamaClient struct {
	config Config
	client *http.Client
}

// NewOllama creates an Ollama chat client.
func NewOllama(cfg Config) *OllamaClient {
	if cfg.Host == "" {
		cfg.Host = "http://127.0.0.1:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	return &OllamaClient{
		config: cfg,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Model returns the configured model identifier.
func (c *OllamaClient) Model() string { return c.config.Model }

// chatRequest is the /api/chat request body.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the /api/chat response body.
type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error"`
}

// Chat sends a single-turn prompt and returns the model's text response.
func (c *OllamaClient) Chat(prompt string) (string, error) {
	reqBody := chatRequest{
		Model:    c.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.client.Post(c.config.Host+"/api/chat", "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse Ollama response: %w", err)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("Ollama error: %s", chatResp.Error)
	}
	if chatResp.Message.Content == "" {
		return "", fmt.Errorf("Ollama returned empty response")
	}

	return chatResp.Message.Content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
