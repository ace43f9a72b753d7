// Package analyzer hosts the two application pipelines: movie review
// analysis and resume evaluation. Each pipeline is a fixed, sequential run of
// chain-of-thought predictors followed by local post-processing of the
// free-text field values. No retries, caching or concurrency.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"textlens/internal/llm"
	"textlens/internal/models"
)

var (
	movieAnalysisSig = llm.MustParseSpec(
		"review -> plot_summary, character_analysis, directing_quality, cinematography, technical_aspects, cultural_impact, rating",
		"Analyze the movie review in depth. Provide detailed plot summary, character analysis, and technical evaluation. Rating should be 0-10.",
	)
	movieGenresSig = llm.MustParseSpec(
		"review -> genres",
		"Identify movie genres from the review. Return as comma-separated list.",
	)
	movieRecommenderSig = llm.MustParseSpec(
		"review -> similar_movies, recommendations",
		"Suggest 3 similar movies and 3 recommendations based on review content. Return each as comma-separated list.",
	)
)

// MovieReviewer analyzes a single movie review with three predictor calls:
// in-depth analysis, genre classification and recommendations.
type MovieReviewer struct {
	analysis    *llm.ChainOfThought
	genres      *llm.ChainOfThought
	recommender *llm.ChainOfThought
	logger      *slog.Logger
}

// NewMovieReviewer wires the three predictors onto one client.
func NewMovieReviewer(client llm.Client) *MovieReviewer {
	return &MovieReviewer{
		analysis:    llm.NewChainOfThought(client, movieAnalysisSig),
		genres:      llm.NewChainOfThought(client, movieGenresSig),
		recommender: llm.NewChainOfThought(client, movieRecommenderSig),
		logger:      slog.Default().With("component", "analyzer", "app", "movie"),
	}
}

// Analyze runs the full pipeline for one review. The three calls are strictly
// sequential; the first error aborts the run.
func (r *MovieReviewer) Analyze(ctx context.Context, review string) (*models.MovieAnalysis, error) {
	inputs := map[string]string{"review": review}

	analysis, err := r.analysis.Predict(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	genres, err := r.genres.Predict(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("genre classification: %w", err)
	}
	comparisons, err := r.recommender.Predict(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("recommendations: %w", err)
	}

	result := &models.MovieAnalysis{
		PlotSummary:       analysis.Get("plot_summary"),
		CharacterAnalysis: analysis.Get("character_analysis"),
		TechnicalReview: models.TechnicalReview{
			Directing:        starRating(analysis.Get("directing_quality")),
			Cinematography:   starRating(analysis.Get("cinematography")),
			TechnicalAspects: starRating(analysis.Get("technical_aspects")),
		},
		CulturalImpact:  analysis.Get("cultural_impact"),
		Rating:          parseNumber(analysis.Get("rating"), 0, 10, 5.0),
		Genres:          splitGenres(genres.Get("genres")),
		SimilarMovies:   splitList(comparisons.Get("similar_movies"), ","),
		Recommendations: splitList(comparisons.Get("recommendations"), ","),
	}

	r.logger.Debug("review analyzed",
		"review_length", len(review),
		"rating", result.Rating,
		"genres", len(result.Genres),
	)
	return result, nil
}
