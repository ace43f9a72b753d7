package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"textlens/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingClient answers each completion based on which output fields the
// system prompt declares, so pipelines with variable call counts can be
// exercised without a live runtime.
type routingClient struct {
	replies map[string]string // distinguishing field name -> raw JSON reply
	err     error
	calls   []llm.ChatRequest
}

func (c *routingClient) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return "", c.err
	}
	for field, reply := range c.replies {
		if strings.Contains(req.System, `"`+field+`"`) {
			return reply, nil
		}
	}
	return "", errors.New("no scripted reply for prompt")
}

func (c *routingClient) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func (c *routingClient) Health(context.Context) (string, error) { return "fake", nil }

func TestMovieReviewerAnalyze(t *testing.T) {
	client := &routingClient{replies: map[string]string{
		"plot_summary": `{
			"reasoning": "step by step",
			"plot_summary": "A farmer pilots a ship through a wormhole.",
			"character_analysis": "Cooper anchors the human drama.",
			"directing_quality": "excellent direction throughout",
			"cinematography": "good use of practical effects",
			"technical_aspects": "poor pacing in the third act",
			"cultural_impact": "Renewed interest in hard sci-fi.",
			"rating": "9.5 out of 10"
		}`,
		"genres":        `{"reasoning": "r", "genres": "sci-fi, drama, adventure"}`,
		"similar_movies": `{"reasoning": "r", "similar_movies": "Contact, Gravity, Arrival", "recommendations": "- 2001: A Space Odyssey, - Solaris, - Sunshine"}`,
	}}

	result, err := NewMovieReviewer(client).Analyze(context.Background(), "Interstellar is a breathtaking cosmic odyssey.")
	require.NoError(t, err)

	assert.Equal(t, "A farmer pilots a ship through a wormhole.", result.PlotSummary)
	assert.Equal(t, "Cooper anchors the human drama.", result.CharacterAnalysis)
	assert.Equal(t, "★★★★★", result.TechnicalReview.Directing)
	assert.Equal(t, "★★★★☆", result.TechnicalReview.Cinematography)
	assert.Equal(t, "★★☆☆☆", result.TechnicalReview.TechnicalAspects)
	assert.InDelta(t, 9.5, result.Rating, 1e-9)
	assert.Equal(t, []string{"Sci-Fi", "Drama", "Adventure"}, result.Genres)
	assert.Equal(t, []string{"Contact", "Gravity", "Arrival"}, result.SimilarMovies)
	assert.Equal(t, []string{"2001: A Space Odyssey", "Solaris", "Sunshine"}, result.Recommendations)

	assert.Len(t, client.calls, 3, "analysis, genres and recommendations are one call each")
}

func TestMovieReviewerRatingClamped(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want float64
	}{
		{"15/10, instant classic", 10},
		{"absolutely terrible, no rating", 5},
		{"0.5", 0.5},
	} {
		client := &routingClient{replies: map[string]string{
			"plot_summary": `{"reasoning":"r","plot_summary":"p","character_analysis":"c",
				"directing_quality":"average","cinematography":"average","technical_aspects":"average",
				"cultural_impact":"none","rating":"` + tc.raw + `"}`,
			"genres":        `{"reasoning":"r","genres":"Drama"}`,
			"similar_movies": `{"reasoning":"r","similar_movies":"A","recommendations":"B"}`,
		}}
		result, err := NewMovieReviewer(client).Analyze(context.Background(), "review")
		require.NoError(t, err)
		assert.InDelta(t, tc.want, result.Rating, 1e-9, "rating %q", tc.raw)
	}
}

func TestMovieReviewerPropagatesClientError(t *testing.T) {
	client := &routingClient{err: llm.ErrUnreachable}
	_, err := NewMovieReviewer(client).Analyze(context.Background(), "review")
	assert.ErrorIs(t, err, llm.ErrUnreachable)
}

func TestStarRatingBuckets(t *testing.T) {
	assert.Equal(t, "★★★★★", starRating("Excellent work"))
	assert.Equal(t, "★★★★☆", starRating("a good effort"))
	assert.Equal(t, "★★★☆☆", starRating("fairly average"))
	assert.Equal(t, "★★☆☆☆", starRating("poor lighting"))
	assert.Equal(t, "★★★☆☆", starRating("unclassifiable"))
}

func TestParseNumber(t *testing.T) {
	assert.InDelta(t, 8.5, parseNumber("8.5/10", 0, 10, 5), 1e-9)
	assert.InDelta(t, 7, parseNumber("I'd give it a 7", 0, 10, 5), 1e-9)
	assert.InDelta(t, 10, parseNumber("11", 0, 10, 5), 1e-9)
	assert.InDelta(t, 1, parseNumber("0", 1, 10, 5), 1e-9)
	assert.InDelta(t, 5, parseNumber("no score here", 0, 10, 5), 1e-9)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ", ","))
	assert.Equal(t, []string{"x", "y"}, splitList("- x; - y;", ";"))
	assert.Nil(t, splitList("  ", ","))
}
