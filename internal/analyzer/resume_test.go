package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeReplies() map[string]string {
	return map[string]string{
		"sections": `{"reasoning":"r","sections":"SUMMARY, EXPERIENCE, EDUCATION"}`,
		"score":    `{"reasoning":"r","analysis":"Clear and relevant.","score":"8"}`,
		"summary": `{"reasoning":"r",
			"summary":"Solid mid-level resume.",
			"strengths":"quantified impact; clear stack",
			"weaknesses":"no summary statement; dense formatting",
			"recommendations":"add metrics; trim skills list"}`,
	}
}

func TestResumeAnalyzerDetailed(t *testing.T) {
	client := &routingClient{replies: resumeReplies()}

	result, err := NewResumeAnalyzer(client).Analyze(context.Background(), "resume text", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"SUMMARY", "EXPERIENCE", "EDUCATION"}, result.Sections)
	require.Len(t, result.SectionAnalyses, 3, "one evaluation per identified section")
	for _, sa := range result.SectionAnalyses {
		assert.Equal(t, "Clear and relevant.", sa.Analysis)
		assert.InDelta(t, 8, sa.Score, 1e-9)
		assert.GreaterOrEqual(t, sa.Score, 1.0)
		assert.LessOrEqual(t, sa.Score, 10.0)
	}
	assert.Equal(t, "Solid mid-level resume.", result.OverallSummary)
	assert.Equal(t, []string{"quantified impact", "clear stack"}, result.Strengths)
	assert.Equal(t, []string{"no summary statement", "dense formatting"}, result.Weaknesses)
	assert.Equal(t, []string{"add metrics", "trim skills list"}, result.Recommendations)

	// sections + 3 evaluations + overall
	assert.Len(t, client.calls, 5)
}

func TestResumeAnalyzerQuickSkipsSectionEvaluation(t *testing.T) {
	client := &routingClient{replies: resumeReplies()}

	result, err := NewResumeAnalyzer(client).Analyze(context.Background(), "resume text", false)
	require.NoError(t, err)

	assert.Empty(t, result.SectionAnalyses)
	assert.Equal(t, []string{"SUMMARY", "EXPERIENCE", "EDUCATION"}, result.Sections)
	// sections + overall only
	assert.Len(t, client.calls, 2)
}

func TestResumeAnalyzerSectionEvaluationGetsSectionInput(t *testing.T) {
	client := &routingClient{replies: resumeReplies()}

	_, err := NewResumeAnalyzer(client).Analyze(context.Background(), "resume text", true)
	require.NoError(t, err)

	var evaluated []string
	for _, call := range client.calls {
		if strings.Contains(call.System, `"score"`) {
			evaluated = append(evaluated, call.User)
		}
	}
	require.Len(t, evaluated, 3)
	assert.Contains(t, evaluated[0], "SUMMARY")
	assert.Contains(t, evaluated[1], "EXPERIENCE")
	assert.Contains(t, evaluated[2], "EDUCATION")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("one two\nthree"))
}
