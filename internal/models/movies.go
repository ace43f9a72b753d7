package models

// TechnicalReview holds the bucketed 1..5 star judgements for the craft
// aspects of a reviewed movie.
type TechnicalReview struct {
	Directing        string `json:"directing" example:"★★★★☆" doc:"Directing quality as a five-star bucket"`
	Cinematography   string `json:"cinematography" example:"★★★★★" doc:"Cinematography quality as a five-star bucket"`
	TechnicalAspects string `json:"technical_aspects" example:"★★★☆☆" doc:"Other technical aspects as a five-star bucket"`
}

// MovieAnalysis is the structured result of analyzing one movie review.
type MovieAnalysis struct {
	PlotSummary       string          `json:"plot_summary" doc:"Plot summary extracted from the review"`
	CharacterAnalysis string          `json:"character_analysis" doc:"Character analysis extracted from the review"`
	TechnicalReview   TechnicalReview `json:"technical_review" doc:"Bucketed technical quality judgements"`
	CulturalImpact    string          `json:"cultural_impact" doc:"Assessment of the movie's cultural impact"`
	Rating            float64         `json:"rating" minimum:"0" maximum:"10" example:"8.5" doc:"Overall rating on a 0-10 scale"`
	Genres            []string        `json:"genres" example:"[\"Sci-Fi\",\"Drama\"]" doc:"Genres identified from the review"`
	SimilarMovies     []string        `json:"similar_movies" doc:"Movies similar to the one reviewed"`
	Recommendations   []string        `json:"recommendations" doc:"Recommended movies based on the review"`
}

// Analyze a movie review
// POST Path: "/v1/movies/analysis"

type PostMovieAnalysisRequest struct {
	Body struct {
		Review string `json:"review" minLength:"1" maxLength:"20000" doc:"Movie review text to analyze"`
	}
}

type MovieAnalysisResponse struct {
	Body struct {
		AnalysisID int64         `json:"analysis_id,omitempty" doc:"Archive identifier, present when the archive is enabled"`
		Model      string        `json:"model" example:"llama3.2:3b" doc:"Model that produced the analysis"`
		Analysis   MovieAnalysis `json:"analysis" doc:"Structured review analysis"`
	}
}
