package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultOllamaURL is where a stock Ollama install listens.
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultModel is a small model that fits on most local machines.
	DefaultModel = "llama3.2:3b"
	// DefaultEmbedModel is used for archive embeddings. The chat model's
	// 3072-dim vectors are oversized for a local archive; nomic-embed-text
	// yields 768 dims.
	DefaultEmbedModel = "nomic-embed-text"
)

// OllamaClient talks to a locally hosted Ollama runtime over its native API.
// The runtime is expected to be running already and to have the configured
// model pulled; there is no retry or recovery beyond error reporting.
type OllamaClient struct {
	baseURL    string
	model      string
	embedModel string
	http       *http.Client
	logger     *slog.Logger
}

// NewOllamaClient creates a client for the given base URL and default models.
// Empty arguments fall back to the stock local setup.
func NewOllamaClient(baseURL, model, embedModel string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &OllamaClient{
		baseURL:    baseURL,
		model:      model,
		embedModel: embedModel,
		http:       &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "llm", "provider", "ollama"),
	}
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Format   json.RawMessage     `json:"format,omitempty"`
	Options  map[string]any      `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
	Done    bool              `json:"done"`
}

// Chat performs a single non-streaming /api/chat round-trip. When the request
// carries a schema it is passed as Ollama's structured-output format.
func (c *OllamaClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := []ollamaChatMessage{}
	if req.System != "" {
		messages = append(messages, ollamaChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, ollamaChatMessage{Role: "user", Content: req.User})

	body := ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Format:   req.Schema,
		// Low temperature for consistent structured replies.
		Options: map[string]any{"temperature": 0.1},
	}

	start := time.Now()
	var res ollamaChatResponse
	if err := c.post(ctx, "/api/chat", body, &res); err != nil {
		return "", err
	}
	c.logger.Debug("chat completion",
		"model", model,
		"prompt_length", len(req.User),
		"response_length", len(res.Message.Content),
		"duration", time.Since(start),
	)
	return res.Message.Content, nil
}

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed returns one vector per input text via /api/embed.
func (c *OllamaClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var res ollamaEmbedResponse
	if err := c.post(ctx, "/api/embed", ollamaEmbedRequest{Model: c.embedModel, Input: texts}, &res); err != nil {
		return nil, err
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrBadResponse, len(res.Embeddings), len(texts))
	}
	return res.Embeddings, nil
}

// Health hits /api/version and returns the runtime version string.
func (c *OllamaClient) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/version", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: version endpoint returned status %d", ErrUnreachable, resp.StatusCode)
	}
	var res struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return "ollama " + res.Version, nil
}

func (c *OllamaClient) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned status %d: %s", ErrBadResponse, path, resp.StatusCode, bytes.TrimSpace(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrBadResponse, path, err)
	}
	return nil
}
