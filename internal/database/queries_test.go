package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"textlens/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var connPool *pgxpool.Pool

// TestMain spins up a pgvector-enabled Postgres container for the package.
// When Docker is unavailable the whole package is skipped.
func TestMain(m *testing.M) {
	ctx := context.Background()

	pgVectorContainer, err := postgres.Run(ctx,
		"pgvector/pgvector:0.7.4-pg16",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			// The container restarts itself once after init, hence two
			// readiness log lines before the port is trustworthy.
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(120*time.Second),
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		fmt.Printf("Skipping database tests, container unavailable: %v\n", err)
		os.Exit(0)
	}
	defer func() {
		if err := pgVectorContainer.Terminate(context.Background()); err != nil {
			fmt.Printf("Error terminating container: %v\n", err)
		}
	}()

	connStr, err := pgVectorContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("Error reading connection string: %v\n", err)
		os.Exit(1)
	}

	connPool, err = database.InitPool(ctx, connStr)
	if err != nil {
		fmt.Printf("Error initializing pool: %v\n", err)
		os.Exit(1)
	}
	defer connPool.Close()

	os.Exit(m.Run())
}

func unitVector(i int) *pgvector.Vector {
	raw := make([]float32, database.EmbedDim)
	raw[i] = 1
	v := pgvector.NewVector(raw)
	return &v
}

func TestInsertAndRetrieveAnalysis(t *testing.T) {
	ctx := context.Background()
	queries := database.New(connPool)

	id, err := queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind:      "movie",
		Input:     "A breathtaking cosmic odyssey.",
		Result:    []byte(`{"rating": 9.5}`),
		Model:     "llama3.2:3b",
		Embedding: unitVector(0),
	})
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := queries.RetrieveAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "movie", got.Kind)
	assert.Equal(t, "A breathtaking cosmic odyssey.", got.Input)
	assert.JSONEq(t, `{"rating": 9.5}`, string(got.Result))
	assert.Equal(t, "llama3.2:3b", got.Model.String)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestInsertAnalysisWithoutEmbedding(t *testing.T) {
	ctx := context.Background()
	queries := database.New(connPool)

	id, err := queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind:   "qa",
		Input:  "How many floors?",
		Result: []byte(`{"answer": "163"}`),
	})
	require.NoError(t, err)

	got, err := queries.RetrieveAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "qa", got.Kind)
	assert.False(t, got.Model.Valid)
}

func TestListAnalysesFiltersByKind(t *testing.T) {
	ctx := context.Background()
	queries := database.New(connPool)

	_, err := queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind: "resume", Input: "John Doe resume", Result: []byte(`{}`),
	})
	require.NoError(t, err)

	resumes, err := queries.ListAnalyses(ctx, database.ListAnalysesParams{Kind: "resume", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, resumes)
	for _, s := range resumes {
		assert.Equal(t, "resume", s.Kind)
	}

	all, err := queries.ListAnalyses(ctx, database.ListAnalysesParams{Limit: 100})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), len(resumes))
}

func TestDeleteAnalysis(t *testing.T) {
	ctx := context.Background()
	queries := database.New(connPool)

	id, err := queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind: "movie", Input: "to be deleted", Result: []byte(`{}`),
	})
	require.NoError(t, err)

	require.NoError(t, queries.DeleteAnalysis(ctx, id))

	_, err = queries.RetrieveAnalysis(ctx, id)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, queries.DeleteAnalysis(ctx, id), pgx.ErrNoRows)
}

func TestSimilarAnalysesOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	queries := database.New(connPool)

	nearID, err := queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind: "movie", Input: "near match", Result: []byte(`{}`), Embedding: unitVector(1),
	})
	require.NoError(t, err)
	_, err = queries.InsertAnalysis(ctx, database.InsertAnalysisParams{
		Kind: "movie", Input: "far match", Result: []byte(`{}`), Embedding: unitVector(2),
	})
	require.NoError(t, err)

	similars, err := queries.SimilarAnalyses(ctx, database.SimilarAnalysesParams{
		Embedding: *unitVector(1),
		Kind:      "movie",
		Limit:     5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, similars)
	assert.Equal(t, nearID, similars[0].AnalysisID)
	assert.InDelta(t, 1.0, similars[0].Similarity, 1e-6)
	for i := 1; i < len(similars); i++ {
		assert.GreaterOrEqual(t, similars[i-1].Similarity, similars[i].Similarity)
	}
}
