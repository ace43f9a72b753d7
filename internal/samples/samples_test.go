package samples

import (
	"testing"

	"textlens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByKind(t *testing.T) {
	movies, err := ByKind(models.KindMovie)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Positive Sci-Fi", movies[0].Name)
	assert.NotEmpty(t, movies[0].Text)

	resumes, err := ByKind(models.KindResume)
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Contains(t, resumes[0].Text, "EXPERIENCE")
}

func TestByKindUnknown(t *testing.T) {
	_, err := ByKind("podcast")
	assert.Error(t, err)
}
