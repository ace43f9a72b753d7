package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"textlens/internal/database"
	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// GetDBPool retrieves the database connection pool from the context.
func GetDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, ok := poolFromContext(ctx)
	if !ok {
		return nil, huma.NewError(http.StatusInternalServerError, "database connection pool not found in context")
	}
	return pool, nil
}

func getAnalysesFunc(ctx context.Context, input *models.GetAnalysesRequest) (*models.GetAnalysesResponse, error) {
	pool, err := GetDBPool(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := database.New(pool).ListAnalyses(ctx, database.ListAnalysesParams{
		Kind:   input.Kind,
		Limit:  int32(input.Limit),
		Offset: int32(input.Offset),
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("unable to list analyses")
	}

	response := &models.GetAnalysesResponse{}
	response.Body.Analyses = []models.AnalysisSummary{}
	for _, s := range summaries {
		response.Body.Analyses = append(response.Body.Analyses, models.AnalysisSummary{
			AnalysisID: s.AnalysisID,
			Kind:       s.Kind,
			Input:      s.Input,
			Model:      s.Model.String,
			CreatedAt:  s.CreatedAt,
		})
	}
	return response, nil
}

func getAnalysisFunc(ctx context.Context, input *models.GetAnalysisRequest) (*models.GetAnalysisResponse, error) {
	pool, err := GetDBPool(ctx)
	if err != nil {
		return nil, err
	}

	a, err := database.New(pool).RetrieveAnalysis(ctx, input.AnalysisID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, huma.Error404NotFound(fmt.Sprintf("analysis %d not found", input.AnalysisID))
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("unable to get analysis")
	}

	response := &models.GetAnalysisResponse{}
	response.Body = models.ArchivedAnalysis{
		AnalysisID: a.AnalysisID,
		Kind:       a.Kind,
		Input:      a.Input,
		Result:     a.Result,
		Model:      a.Model.String,
		CreatedAt:  a.CreatedAt,
	}
	return response, nil
}

func deleteAnalysisFunc(ctx context.Context, input *models.DeleteAnalysisRequest) (*models.DeleteAnalysisResponse, error) {
	pool, err := GetDBPool(ctx)
	if err != nil {
		return nil, err
	}

	err = database.New(pool).DeleteAnalysis(ctx, input.AnalysisID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, huma.Error404NotFound(fmt.Sprintf("analysis %d not found", input.AnalysisID))
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("unable to delete analysis")
	}

	response := &models.DeleteAnalysisResponse{}
	response.Body.Message = fmt.Sprintf("Successfully deleted analysis %d", input.AnalysisID)
	return response, nil
}

// Nearest-neighbour search over archived inputs: embed the query text, then
// order the archive by cosine distance.
func postSimilarsFunc(ctx context.Context, input *models.PostSimilarsRequest) (*models.SimilarsResponse, error) {
	pool, err := GetDBPool(ctx)
	if err != nil {
		return nil, err
	}
	client, err := GetLLMClient(ctx)
	if err != nil {
		return nil, err
	}

	vectors, err := client.Embed(ctx, []string{input.Body.Text})
	if err != nil {
		return nil, llmError(err)
	}
	if len(vectors) != 1 {
		return nil, huma.Error502BadGateway("embeddings model returned no vector for the query text")
	}
	if len(vectors[0]) != database.EmbedDim {
		return nil, huma.Error502BadGateway(fmt.Sprintf(
			"embeddings model returned %d dimensions, archive expects %d", len(vectors[0]), database.EmbedDim))
	}

	similars, err := database.New(pool).SimilarAnalyses(ctx, database.SimilarAnalysesParams{
		Embedding: pgvector.NewVector(vectors[0]),
		Kind:      input.Body.Kind,
		Limit:     int32(input.Body.Limit),
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("unable to search for similar analyses")
	}

	response := &models.SimilarsResponse{}
	response.Body.Similars = []models.SimilarAnalysis{}
	for _, s := range similars {
		response.Body.Similars = append(response.Body.Similars, models.SimilarAnalysis{
			AnalysisID: s.AnalysisID,
			Kind:       s.Kind,
			Input:      s.Input,
			Similarity: s.Similarity,
		})
	}
	return response, nil
}

// RegisterAnalysesRoutes registers the archive. Only called when a database
// pool exists; deletion requires the admin key.
func RegisterAnalysesRoutes(pool *pgxpool.Pool, client llm.Client, api huma.API) {
	getAnalysesOp := huma.Operation{
		OperationID: "getAnalyses",
		Method:      http.MethodGet,
		Path:        "/v1/analyses",
		Summary:     "List archived analyses",
		Tags:        []string{"analyses"},
	}
	getAnalysisOp := huma.Operation{
		OperationID: "getAnalysis",
		Method:      http.MethodGet,
		Path:        "/v1/analyses/{analysis_id}",
		Summary:     "Get one archived analysis",
		Tags:        []string{"analyses"},
	}
	deleteAnalysisOp := huma.Operation{
		OperationID: "deleteAnalysis",
		Method:      http.MethodDelete,
		Path:        "/v1/analyses/{analysis_id}",
		Summary:     "Delete an archived analysis",
		Security:    []map[string][]string{{"adminAuth": {}}},
		Tags:        []string{"analyses"},
	}
	postSimilarsOp := huma.Operation{
		OperationID: "postSimilars",
		Method:      http.MethodPost,
		Path:        "/v1/analyses/similars",
		Summary:     "Find archived analyses similar to a text",
		Tags:        []string{"analyses"},
	}

	huma.Register(api, getAnalysesOp, addValueToContext(PoolKey, pool, getAnalysesFunc))
	huma.Register(api, getAnalysisOp, addValueToContext(PoolKey, pool, getAnalysisFunc))
	huma.Register(api, deleteAnalysisOp, addValueToContext(PoolKey, pool, deleteAnalysisFunc))
	huma.Register(api, postSimilarsOp,
		addValueToContext(PoolKey, pool,
			addValueToContext(LLMKey, client, postSimilarsFunc)))
}
