package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"textlens/internal/analyzer"
	"textlens/internal/llm"
	"textlens/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

func getResumeAnalyzer(ctx context.Context) (*analyzer.ResumeAnalyzer, error) {
	a, ok := ctx.Value(ResumesKey).(*analyzer.ResumeAnalyzer)
	if !ok {
		return nil, huma.NewError(500, "resume analyzer not found in context")
	}
	return a, nil
}

// Evaluate one resume. Detailed mode evaluates every identified section with
// its own LLM call; quick mode only identifies sections and assesses the
// whole document.
func postResumeAnalysisFunc(ctx context.Context, input *models.PostResumeAnalysisRequest) (*models.ResumeAnalysisResponse, error) {
	resumeText := strings.TrimSpace(input.Body.ResumeText)
	if analyzer.WordCount(resumeText) < analyzer.MinResumeWords {
		return nil, huma.Error422UnprocessableEntity(
			fmt.Sprintf("please provide a more detailed resume (minimum %d words)", analyzer.MinResumeWords))
	}

	a, err := getResumeAnalyzer(ctx)
	if err != nil {
		return nil, err
	}
	options, err := GetOptions(ctx)
	if err != nil {
		return nil, err
	}

	detailed := input.Mode != "quick"
	result, err := a.Analyze(ctx, resumeText, detailed)
	if err != nil {
		return nil, llmError(err)
	}

	response := &models.ResumeAnalysisResponse{}
	response.Body.Model = options.Model
	response.Body.Analysis = *result
	response.Body.AnalysisID = archiveAnalysis(ctx, models.KindResume, resumeText, result, options.Model)
	return response, nil
}

// RegisterResumeRoutes registers the resume evaluation app.
func RegisterResumeRoutes(pool *pgxpool.Pool, client llm.Client, a *analyzer.ResumeAnalyzer, options *models.Options, api huma.API) {
	postResumeAnalysisOp := huma.Operation{
		OperationID: "postResumeAnalysis",
		Method:      http.MethodPost,
		Path:        "/v1/resumes/analysis",
		Summary:     "Evaluate a resume",
		Description: "Identifies resume sections, optionally evaluates each one, and produces an overall assessment with strengths, weaknesses and recommendations.",
		Tags:        []string{"resumes"},
	}

	huma.Register(api, postResumeAnalysisOp,
		addValueToContext(PoolKey, pool,
			addValueToContext(LLMKey, client,
				addValueToContext(ResumesKey, a,
					addValueToContext(OptionsKey, options, postResumeAnalysisFunc)))))
}
