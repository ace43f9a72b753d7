package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pgvector/pgvector-go"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles the archive's SQL against one DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Analysis is one archived analysis row.
type Analysis struct {
	AnalysisID int64
	Kind       string
	Input      string
	Result     []byte
	Model      pgtype.Text
	CreatedAt  time.Time
}

type InsertAnalysisParams struct {
	Kind   string
	Input  string
	Result []byte
	Model  string
	// Embedding may be nil when the embeddings model was unavailable; the
	// row is still archived, it just won't turn up in similarity queries.
	Embedding *pgvector.Vector
}

func (q *Queries) InsertAnalysis(ctx context.Context, params InsertAnalysisParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx,
		`insert into analyses (kind, input, result, model, embedding)
		 values ($1, $2, $3, $4, $5)
		 returning analysis_id`,
		params.Kind, params.Input, params.Result,
		pgtype.Text{String: params.Model, Valid: params.Model != ""},
		params.Embedding,
	).Scan(&id)
	return id, err
}

func (q *Queries) RetrieveAnalysis(ctx context.Context, analysisID int64) (Analysis, error) {
	var a Analysis
	err := q.db.QueryRow(ctx,
		`select analysis_id, kind, input, result, model, created_at
		 from analyses where analysis_id = $1`,
		analysisID,
	).Scan(&a.AnalysisID, &a.Kind, &a.Input, &a.Result, &a.Model, &a.CreatedAt)
	return a, err
}

type ListAnalysesParams struct {
	// Kind restricts the listing to one app when non-empty.
	Kind   string
	Limit  int32
	Offset int32
}

// AnalysisSummaryRow is the listing form: input truncated, no result body.
type AnalysisSummaryRow struct {
	AnalysisID int64
	Kind       string
	Input      string
	Model      pgtype.Text
	CreatedAt  time.Time
}

func (q *Queries) ListAnalyses(ctx context.Context, params ListAnalysesParams) ([]AnalysisSummaryRow, error) {
	rows, err := q.db.Query(ctx,
		`select analysis_id, kind, left(input, 200), model, created_at
		 from analyses
		 where ($1 = '' or kind = $1)
		 order by created_at desc, analysis_id desc
		 limit $2 offset $3`,
		params.Kind, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []AnalysisSummaryRow
	for rows.Next() {
		var s AnalysisSummaryRow
		if err := rows.Scan(&s.AnalysisID, &s.Kind, &s.Input, &s.Model, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (q *Queries) DeleteAnalysis(ctx context.Context, analysisID int64) error {
	tag, err := q.db.Exec(ctx, `delete from analyses where analysis_id = $1`, analysisID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type SimilarAnalysesParams struct {
	Embedding pgvector.Vector
	// Kind restricts matches to one app when non-empty.
	Kind  string
	Limit int32
}

// SimilarAnalysisRow is a nearest-neighbour match with cosine similarity.
type SimilarAnalysisRow struct {
	AnalysisID int64
	Kind       string
	Input      string
	Similarity float64
}

func (q *Queries) SimilarAnalyses(ctx context.Context, params SimilarAnalysesParams) ([]SimilarAnalysisRow, error) {
	rows, err := q.db.Query(ctx,
		`select analysis_id, kind, left(input, 200), 1 - (embedding <=> $1) as similarity
		 from analyses
		 where embedding is not null and ($2 = '' or kind = $2)
		 order by embedding <=> $1
		 limit $3`,
		params.Embedding, params.Kind, params.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var similars []SimilarAnalysisRow
	for rows.Next() {
		var s SimilarAnalysisRow
		if err := rows.Scan(&s.AnalysisID, &s.Kind, &s.Input, &s.Similarity); err != nil {
			return nil, err
		}
		similars = append(similars, s)
	}
	return similars, rows.Err()
}
