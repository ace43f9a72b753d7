package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"textlens/internal/llm"
	"textlens/internal/models"
)

// MinResumeWords is the minimum input length the resume app accepts.
const MinResumeWords = 50

var (
	resumeSectionsSig = llm.MustParseSpec(
		"resume_text -> sections",
		"Identify key resume sections from the text. Return as comma-separated list.",
	)
	resumeEvaluatorSig = llm.MustParseSpec(
		"section, text -> analysis, score",
		"Analyze this resume section for clarity, relevance, and impact. Provide critical feedback and score 1-10.",
	)
	resumeOverallSig = llm.MustParseSpec(
		"resume_text -> summary, strengths, weaknesses, recommendations",
		"Provide overall resume assessment with key strengths, weaknesses, and actionable improvement suggestions. Return strengths, weaknesses and recommendations as semicolon-separated lists.",
	)
)

// ResumeAnalyzer evaluates a resume hierarchically: identify sections,
// evaluate each section (detailed mode), then assess the whole document.
type ResumeAnalyzer struct {
	sections  *llm.ChainOfThought
	evaluator *llm.ChainOfThought
	overall   *llm.ChainOfThought
	logger    *slog.Logger
}

// NewResumeAnalyzer wires the three predictors onto one client.
func NewResumeAnalyzer(client llm.Client) *ResumeAnalyzer {
	return &ResumeAnalyzer{
		sections:  llm.NewChainOfThought(client, resumeSectionsSig),
		evaluator: llm.NewChainOfThought(client, resumeEvaluatorSig),
		overall:   llm.NewChainOfThought(client, resumeOverallSig),
		logger:    slog.Default().With("component", "analyzer", "app", "resume"),
	}
}

// WordCount counts whitespace-separated words, the measure used for the
// minimum-input check.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Analyze runs the pipeline for one resume. In detailed mode every identified
// section gets its own evaluation call; quick mode skips those. Calls are
// strictly sequential and the first error aborts the run.
func (a *ResumeAnalyzer) Analyze(ctx context.Context, resumeText string, detailed bool) (*models.ResumeAnalysis, error) {
	inputs := map[string]string{"resume_text": resumeText}

	identified, err := a.sections.Predict(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("section identification: %w", err)
	}
	sections := splitList(identified.Get("sections"), ",")

	var sectionAnalyses []models.SectionAnalysis
	if detailed {
		for _, section := range sections {
			evaluated, err := a.evaluator.Predict(ctx, map[string]string{
				"section": section,
				"text":    resumeText,
			})
			if err != nil {
				return nil, fmt.Errorf("evaluating section %q: %w", section, err)
			}
			sectionAnalyses = append(sectionAnalyses, models.SectionAnalysis{
				Section:  section,
				Analysis: evaluated.Get("analysis"),
				Score:    parseNumber(evaluated.Get("score"), 1, 10, 5.0),
			})
		}
	}

	overall, err := a.overall.Predict(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("overall assessment: %w", err)
	}

	result := &models.ResumeAnalysis{
		Sections:        sections,
		SectionAnalyses: sectionAnalyses,
		OverallSummary:  overall.Get("summary"),
		Strengths:       splitList(overall.Get("strengths"), ";"),
		Weaknesses:      splitList(overall.Get("weaknesses"), ";"),
		Recommendations: splitList(overall.Get("recommendations"), ";"),
	}

	a.logger.Debug("resume analyzed",
		"resume_words", WordCount(resumeText),
		"sections", len(sections),
		"detailed", detailed,
	)
	return result, nil
}
