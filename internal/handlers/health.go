package handlers

import (
	"context"
	"net/http"

	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Probe the LLM runtime and, when configured, the archive database. The
// service is "ok" only when every configured dependency answers.
func getHealthFunc(ctx context.Context, input *struct{}) (*models.GetHealthResponse, error) {
	client, err := GetLLMClient(ctx)
	if err != nil {
		return nil, err
	}

	response := &models.GetHealthResponse{}
	response.Body.Status = "ok"

	version, err := client.Health(ctx)
	if err != nil {
		response.Body.Status = "degraded"
		response.Body.Runtime = models.RuntimeHealth{Error: err.Error()}
	} else {
		response.Body.Runtime = models.RuntimeHealth{Reachable: true, Version: version}
	}

	if pool, ok := poolFromContext(ctx); ok {
		response.Body.Database.Configured = true
		if err := pool.Ping(ctx); err != nil {
			response.Body.Status = "degraded"
			response.Body.Database.Error = err.Error()
		} else {
			response.Body.Database.Reachable = true
		}
	}

	return response, nil
}

// RegisterHealthRoutes registers the dependency probe.
func RegisterHealthRoutes(pool *pgxpool.Pool, client llm.Client, api huma.API) {
	getHealthOp := huma.Operation{
		OperationID: "getHealth",
		Method:      http.MethodGet,
		Path:        "/v1/health",
		Summary:     "Check service health",
		Tags:        []string{"health"},
	}

	huma.Register(api, getHealthOp,
		addValueToContext(PoolKey, pool,
			addValueToContext(LLMKey, client, getHealthFunc)))
}
