package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient serves the same Client surface over any OpenAI-compatible
// chat-completions endpoint. With the base URL pointed at Ollama's /v1 this
// lets both runtime flavours be exercised with one switch; with a real key it
// targets the hosted API.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	embedModel string
	logger     *slog.Logger
}

// NewOpenAIClient creates a client for the given endpoint. An empty baseURL
// targets the official API; an empty model falls back to the local default.
func NewOpenAIClient(baseURL, apiKey, model, embedModel string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	return &OpenAIClient{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		embedModel: embedModel,
		logger:     slog.Default().With("component", "llm", "provider", "openai"),
	}
}

// Chat performs a single chat completion. Schema-carrying requests use JSON
// mode; the object shape itself is enforced by Signature.Parse on return.
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	request := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.1,
	}
	if req.Schema != nil {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrBadResponse)
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug("chat completion",
		"model", model,
		"prompt_length", len(req.User),
		"response_length", len(content),
		"tokens_used", resp.Usage.TotalTokens,
		"duration", time.Since(start),
	)
	return content, nil
}

// Embed returns one vector per input text.
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrBadResponse, len(resp.Data), len(texts))
	}
	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ErrBadResponse, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Health lists models as a reachability probe.
func (c *OpenAIClient) Health(ctx context.Context) (string, error) {
	models, err := c.client.ListModels(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return fmt.Sprintf("openai-compatible (%d models)", len(models.Models)), nil
}
