package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Sentinel errors callers branch on when mapping failures to API responses.
var (
	// ErrUnreachable indicates the LLM runtime could not be reached at all.
	ErrUnreachable = errors.New("llm runtime unreachable")
	// ErrBadResponse indicates the runtime answered but the reply did not
	// satisfy the declared output contract.
	ErrBadResponse = errors.New("malformed llm response")
)

// ChatRequest is a single non-streaming completion request.
type ChatRequest struct {
	// Model overrides the client's default model when non-empty.
	Model  string
	System string
	User   string
	// Schema, when set, constrains the output to a JSON object of that shape
	// (Ollama structured outputs; JSON mode on OpenAI-compatible servers).
	Schema json.RawMessage
}

// Client is the minimal surface the analyzers need from an LLM runtime:
// one completion per call, an embeddings endpoint, and a reachability probe.
// No retries, batching or caching happen behind this interface.
type Client interface {
	// Chat performs a single chat completion and returns the raw reply text.
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// Embed returns one embedding vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Health probes the runtime and returns a short version/identity string.
	Health(ctx context.Context) (string, error)
}
