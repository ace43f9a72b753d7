package handlers

import (
	"context"
	"net/http"
	"strings"

	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getQAPredictor(ctx context.Context) (*llm.ChainOfThought, error) {
	qa, ok := ctx.Value(QAKey).(*llm.ChainOfThought)
	if !ok {
		return nil, huma.NewError(500, "qa predictor not found in context")
	}
	return qa, nil
}

// One-shot question answering with an optional per-request model override.
func postQAFunc(ctx context.Context, input *models.PostQARequest) (*models.QAResponse, error) {
	question := strings.TrimSpace(input.Body.Question)
	if question == "" {
		return nil, huma.Error422UnprocessableEntity("please enter a question")
	}

	qa, err := getQAPredictor(ctx)
	if err != nil {
		return nil, err
	}
	options, err := GetOptions(ctx)
	if err != nil {
		return nil, err
	}

	model := options.Model
	if input.Body.Model != "" {
		model = input.Body.Model
	}

	pred, err := qa.PredictWithModel(ctx, input.Body.Model, map[string]string{"question": question})
	if err != nil {
		return nil, llmError(err)
	}

	response := &models.QAResponse{}
	response.Body.Answer = pred.Get("answer")
	response.Body.Reasoning = pred.Reasoning
	response.Body.Model = model
	archiveAnalysis(ctx, models.KindQA, question, pred.Outputs, model)
	return response, nil
}

// RegisterQARoutes registers the question answering demo.
func RegisterQARoutes(pool *pgxpool.Pool, client llm.Client, qa *llm.ChainOfThought, options *models.Options, api huma.API) {
	postQAOp := huma.Operation{
		OperationID: "postQA",
		Method:      http.MethodPost,
		Path:        "/v1/qa",
		Summary:     "Answer a question",
		Tags:        []string{"qa"},
	}

	huma.Register(api, postQAOp,
		addValueToContext(PoolKey, pool,
			addValueToContext(LLMKey, client,
				addValueToContext(QAKey, qa,
					addValueToContext(OptionsKey, options, postQAFunc)))))
}
