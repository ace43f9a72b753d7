package llm

import (
	"context"
	"fmt"
)

// reasoningField is prepended to every ChainOfThought signature so the model
// thinks step by step before filling in the declared outputs.
const reasoningField = "reasoning"

// Prediction is the structured result of one predictor call.
type Prediction struct {
	Reasoning string
	Outputs   map[string]string
}

// Get returns the named output field, or the empty string when absent.
func (p Prediction) Get(name string) string {
	return p.Outputs[name]
}

// ChainOfThought issues a single completion for a signature, asking for an
// extra reasoning field ahead of the declared outputs.
type ChainOfThought struct {
	client Client
	sig    Signature
	full   Signature
}

// NewChainOfThought builds a predictor for the given signature.
func NewChainOfThought(client Client, sig Signature) *ChainOfThought {
	return &ChainOfThought{
		client: client,
		sig:    sig,
		full:   sig.WithPrefixedOutput(reasoningField),
	}
}

// Predict renders the prompt for the inputs, performs one completion and
// parses the reply against the signature's output contract.
func (p *ChainOfThought) Predict(ctx context.Context, inputs map[string]string) (Prediction, error) {
	return p.PredictWithModel(ctx, "", inputs)
}

// PredictWithModel is Predict with a per-call model override (empty keeps the
// client default).
func (p *ChainOfThought) PredictWithModel(ctx context.Context, model string, inputs map[string]string) (Prediction, error) {
	user, err := p.full.Prompt(inputs)
	if err != nil {
		return Prediction{}, err
	}

	raw, err := p.client.Chat(ctx, ChatRequest{
		Model:  model,
		System: p.full.System(),
		User:   user,
		Schema: p.full.Schema(),
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("chat completion: %w", err)
	}

	fields, err := p.full.Parse(raw)
	if err != nil {
		return Prediction{}, err
	}

	reasoning := fields[reasoningField]
	delete(fields, reasoningField)
	return Prediction{Reasoning: reasoning, Outputs: fields}, nil
}
