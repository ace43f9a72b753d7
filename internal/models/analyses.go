package models

import (
	"encoding/json"
	"time"
)

// AnalysisKind discriminates archived analyses by originating app.
const (
	KindMovie  = "movie"
	KindResume = "resume"
	KindQA     = "qa"
)

// ArchivedAnalysis is one stored analysis run.
type ArchivedAnalysis struct {
	AnalysisID int64           `json:"analysis_id" doc:"Archive identifier"`
	Kind       string          `json:"kind" enum:"movie,resume,qa" doc:"Originating app"`
	Input      string          `json:"input" doc:"Input text that was analyzed"`
	Result     json.RawMessage `json:"result" doc:"Structured analysis result as produced by the app"`
	Model      string          `json:"model" doc:"Model that produced the result"`
	CreatedAt  time.Time       `json:"created_at" doc:"When the analysis ran"`
}

// AnalysisSummary is the listing form of an archived analysis (no result body).
type AnalysisSummary struct {
	AnalysisID int64     `json:"analysis_id" doc:"Archive identifier"`
	Kind       string    `json:"kind" doc:"Originating app"`
	Input      string    `json:"input" doc:"Input text, truncated for listing"`
	Model      string    `json:"model" doc:"Model that produced the result"`
	CreatedAt  time.Time `json:"created_at" doc:"When the analysis ran"`
}

// SimilarAnalysis is a nearest-neighbour match for a query text.
type SimilarAnalysis struct {
	AnalysisID int64   `json:"analysis_id" doc:"Archive identifier"`
	Kind       string  `json:"kind" doc:"Originating app"`
	Input      string  `json:"input" doc:"Input text of the match"`
	Similarity float64 `json:"similarity" minimum:"0" maximum:"1" doc:"Cosine similarity to the query text"`
}

// List archived analyses
// GET Path: "/v1/analyses"

type GetAnalysesRequest struct {
	Kind   string `json:"kind,omitempty" query:"kind" enum:"movie,resume,qa" doc:"Restrict to one app"`
	Limit  int    `json:"limit,omitempty" query:"limit" minimum:"1" maximum:"200" default:"20" doc:"Maximum number of analyses to return"`
	Offset int    `json:"offset,omitempty" query:"offset" minimum:"0" default:"0" doc:"Offset into the list of analyses"`
}

type GetAnalysesResponse struct {
	Body struct {
		Analyses []AnalysisSummary `json:"analyses" doc:"Archived analyses, newest first"`
	}
}

// Get one archived analysis
// GET Path: "/v1/analyses/{analysis_id}"

type GetAnalysisRequest struct {
	AnalysisID int64 `json:"analysis_id" path:"analysis_id" minimum:"1" doc:"Archive identifier"`
}

type GetAnalysisResponse struct {
	Body ArchivedAnalysis
}

// Delete one archived analysis (admin only)
// DELETE Path: "/v1/analyses/{analysis_id}"

type DeleteAnalysisRequest struct {
	AnalysisID int64 `json:"analysis_id" path:"analysis_id" minimum:"1" doc:"Archive identifier"`
}

type DeleteAnalysisResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation that the analysis was deleted"`
	}
}

// Find archived analyses similar to a query text
// POST Path: "/v1/analyses/similars"

type PostSimilarsRequest struct {
	Body struct {
		Text  string `json:"text" minLength:"1" maxLength:"20000" doc:"Query text to match against archived inputs"`
		Kind  string `json:"kind,omitempty" enum:"movie,resume,qa" doc:"Restrict matches to one app"`
		Limit int    `json:"limit,omitempty" minimum:"1" maximum:"50" default:"5" doc:"Maximum number of matches"`
	}
}

type SimilarsResponse struct {
	Body struct {
		Similars []SimilarAnalysis `json:"similars" doc:"Nearest archived analyses by input embedding"`
	}
}
