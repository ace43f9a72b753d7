package handlers

import (
	"context"
	"errors"
	"fmt"

	"textlens/internal/analyzer"
	"textlens/internal/llm"
	"textlens/internal/models"

	huma "github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// Context keys
const (
	PoolKey    = contextKey("dbPool")
	LLMKey     = contextKey("llmClient")
	MoviesKey  = contextKey("movieReviewer")
	ResumesKey = contextKey("resumeAnalyzer")
	QAKey      = contextKey("qaPredictor")
	OptionsKey = contextKey("options")
)

// Error responses
var (
	ErrLLMNotFound     = errors.New("llm client not found in context")
	ErrOptionsNotFound = errors.New("options not found in context")
)

// AddRoutes adds all the routes to the API. The archive routes are only
// registered when a database pool is present; without one the service runs
// fully stateless and /v1/analyses does not exist.
func AddRoutes(pool *pgxpool.Pool, client llm.Client, options *models.Options, api huma.API) error {
	movies := analyzer.NewMovieReviewer(client)
	resumes := analyzer.NewResumeAnalyzer(client)
	qa := llm.NewChainOfThought(client, llm.MustParseSpec(
		"question -> answer",
		"Answer the question concisely and factually.",
	))

	RegisterMovieRoutes(pool, client, movies, options, api)
	RegisterResumeRoutes(pool, client, resumes, options, api)
	RegisterQARoutes(pool, client, qa, options, api)
	RegisterSampleRoutes(api)
	RegisterHealthRoutes(pool, client, api)
	if pool != nil {
		RegisterAnalysesRoutes(pool, client, api)
	}
	return nil
}

// Middleware to add an arbitrary dependency to the handler context.
func addValueToContext[I any, O any](key contextKey, value any, next func(context.Context, *I) (*O, error)) func(context.Context, *I) (*O, error) {
	return func(ctx context.Context, input *I) (*O, error) {
		ctx = context.WithValue(ctx, key, value)
		return next(ctx, input)
	}
}

// poolFromContext returns the archive pool when one was configured.
func poolFromContext(ctx context.Context) (*pgxpool.Pool, bool) {
	pool, ok := ctx.Value(PoolKey).(*pgxpool.Pool)
	return pool, ok && pool != nil
}

// GetLLMClient retrieves the LLM client from the context.
func GetLLMClient(ctx context.Context) (llm.Client, error) {
	client, ok := ctx.Value(LLMKey).(llm.Client)
	if !ok {
		return nil, huma.NewError(500, ErrLLMNotFound.Error())
	}
	return client, nil
}

// GetOptions retrieves the CLI options from the context.
func GetOptions(ctx context.Context) (*models.Options, error) {
	options, ok := ctx.Value(OptionsKey).(*models.Options)
	if !ok {
		return nil, huma.NewError(500, ErrOptionsNotFound.Error())
	}
	return options, nil
}

// llmError maps LLM failures onto API errors: an unreachable runtime and a
// malformed reply are both upstream failures (502); anything else is ours.
func llmError(err error) error {
	switch {
	case errors.Is(err, llm.ErrUnreachable):
		return huma.Error502BadGateway(fmt.Sprintf("LLM runtime unreachable. Is it running with the model pulled? (%v)", err))
	case errors.Is(err, llm.ErrBadResponse):
		return huma.Error502BadGateway(fmt.Sprintf("LLM returned a malformed response. %v", err))
	default:
		return huma.Error500InternalServerError(fmt.Sprintf("analysis failed: %v", err))
	}
}
