package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"alfredoptarigan/career-compass/internal/models"
)

func TestHashingEmbedderDeterminism(t *testing.T) {
	embedder := NewHashingEmbedder()

	first, err := embedder.Embed(context.Background(), "python teamwork hands-on ai")
	require.NoError(t, err)
	second, err := embedder.Embed(context.Background(), "python teamwork hands-on ai")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, EmbeddingDim)
	assert.Equal(t, EmbeddingDim, embedder.Dimension())
}

func TestHashingEmbedderCaseInsensitive(t *testing.T) {
	embedder := NewHashingEmbedder()

	lower, err := embedder.Embed(context.Background(), "machine learning")
	require.NoError(t, err)
	upper, err := embedder.Embed(context.Background(), "Machine Learning")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestHashingEmbedderNormalized(t *testing.T) {
	embedder := NewHashingEmbedder()

	vec, err := embedder.Embed(context.Background(), "statistics communication visual data")
	require.NoError(t, err)

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-4)
}

func TestHashingEmbedderDistinguishesText(t *testing.T) {
	embedder := NewHashingEmbedder()

	a, err := embedder.Embed(context.Background(), "painting sculpture museums")
	require.NoError(t, err)
	b, err := embedder.Embed(context.Background(), "databases networking servers")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashingEmbedderEmptyText(t *testing.T) {
	embedder := NewHashingEmbedder()

	vec, err := embedder.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vec, EmbeddingDim)
}

func TestProfileQueryTextFieldOrder(t *testing.T) {
	profile := &models.SkillProfile{
		TechnicalSkills: datatypes.NewJSONSlice([]string{"python"}),
		SoftSkills:      datatypes.NewJSONSlice([]string{"teamwork"}),
		LearningStyle:   "hands-on",
		CareerInterests: datatypes.NewJSONSlice([]string{"ai"}),
	}

	assert.Equal(t, "python teamwork hands-on ai", ProfileQueryText(profile))
}

func TestProfileQueryTextSkipsEmptyLearningStyle(t *testing.T) {
	profile := &models.SkillProfile{
		TechnicalSkills: datatypes.NewJSONSlice([]string{"Excel"}),
		SoftSkills:      datatypes.JSONSlice[string]{},
		CareerInterests: datatypes.NewJSONSlice([]string{"Finance"}),
	}

	assert.Equal(t, "excel finance", ProfileQueryText(profile))
}
