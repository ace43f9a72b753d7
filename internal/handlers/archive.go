package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"textlens/internal/database"

	"github.com/pgvector/pgvector-go"
)

// archiveAnalysis stores a finished analysis when the archive is enabled and
// returns the new archive id (0 when disabled). Archiving is strictly
// write-behind: the interaction itself stays stateless and a failing archive
// never fails the request, it is only logged.
func archiveAnalysis(ctx context.Context, kind, input string, result any, model string) int64 {
	pool, ok := poolFromContext(ctx)
	if !ok {
		return 0
	}
	logger := slog.Default().With("component", "archive", "kind", kind)

	data, err := json.Marshal(result)
	if err != nil {
		logger.Warn("skipping archive, result not marshalable", "error", err)
		return 0
	}

	id, err := database.New(pool).InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind:      kind,
		Input:     input,
		Result:    data,
		Model:     model,
		Embedding: embedInput(ctx, input, logger),
	})
	if err != nil {
		logger.Warn("archive insert failed", "error", err)
		return 0
	}
	logger.Debug("analysis archived", "analysis_id", id)
	return id
}

// embedInput computes the input embedding for similarity search. Best-effort:
// a missing embeddings model or a dimension mismatch just drops the vector.
func embedInput(ctx context.Context, input string, logger *slog.Logger) *pgvector.Vector {
	client, err := GetLLMClient(ctx)
	if err != nil {
		return nil
	}
	vectors, err := client.Embed(ctx, []string{input})
	if err != nil {
		logger.Warn("embedding failed, archiving without vector", "error", err)
		return nil
	}
	if len(vectors) != 1 || len(vectors[0]) != database.EmbedDim {
		logger.Warn("unexpected embedding shape, archiving without vector",
			"count", len(vectors), "expected_dim", database.EmbedDim)
		return nil
	}
	v := pgvector.NewVector(vectors[0])
	return &v
}
