package handlers

import (
	"context"
	"net/http"
	"strings"

	"textlens/internal/analyzer"
	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getMovieReviewer(ctx context.Context) (*analyzer.MovieReviewer, error) {
	reviewer, ok := ctx.Value(MoviesKey).(*analyzer.MovieReviewer)
	if !ok {
		return nil, huma.NewError(500, "movie reviewer not found in context")
	}
	return reviewer, nil
}

// Analyze one movie review: three sequential LLM calls, then local
// post-processing. One UI interaction, one linear pass, no state.
func postMovieAnalysisFunc(ctx context.Context, input *models.PostMovieAnalysisRequest) (*models.MovieAnalysisResponse, error) {
	review := strings.TrimSpace(input.Body.Review)
	if review == "" {
		return nil, huma.Error422UnprocessableEntity("please enter a review to analyze")
	}

	reviewer, err := getMovieReviewer(ctx)
	if err != nil {
		return nil, err
	}
	options, err := GetOptions(ctx)
	if err != nil {
		return nil, err
	}

	result, err := reviewer.Analyze(ctx, review)
	if err != nil {
		return nil, llmError(err)
	}

	response := &models.MovieAnalysisResponse{}
	response.Body.Model = options.Model
	response.Body.Analysis = *result
	response.Body.AnalysisID = archiveAnalysis(ctx, models.KindMovie, review, result, options.Model)
	return response, nil
}

// RegisterMovieRoutes registers the movie review analysis app.
func RegisterMovieRoutes(pool *pgxpool.Pool, client llm.Client, reviewer *analyzer.MovieReviewer, options *models.Options, api huma.API) {
	postMovieAnalysisOp := huma.Operation{
		OperationID: "postMovieAnalysis",
		Method:      http.MethodPost,
		Path:        "/v1/movies/analysis",
		Summary:     "Analyze a movie review",
		Description: "Runs the review through in-depth analysis, genre classification and recommendation prompts against the local LLM runtime and returns the structured result.",
		Tags:        []string{"movies"},
	}

	huma.Register(api, postMovieAnalysisOp,
		addValueToContext(PoolKey, pool,
			addValueToContext(LLMKey, client,
				addValueToContext(MoviesKey, reviewer,
					addValueToContext(OptionsKey, options, postMovieAnalysisFunc)))))
}
