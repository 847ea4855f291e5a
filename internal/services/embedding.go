package services

import (
	"context"
	"math"
	"strings"

	"alfredoptarigan/career-compass/internal/models"
)

// EmbeddingDim is the vector size of the career collection. The hashing
// embedder and the Qdrant collection must agree on it.
const EmbeddingDim = 384

// Embedder turns free-form text into a fixed-dimension query vector. The
// default implementation is a deterministic hashing scheme; a model-backed
// implementation can be swapped in without touching retrieval or ranking.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type hashingEmbedder struct {
	dim int
}

// NewHashingEmbedder returns the deterministic text→vector embedder used
// for career retrieval. Identical text always yields an identical vector.
func NewHashingEmbedder() Embedder {
	return &hashingEmbedder{dim: EmbeddingDim}
}

// Dimension implements Embedder.
func (h *hashingEmbedder) Dimension() int {
	return h.dim
}

// Embed implements Embedder. Character codes are folded into fixed buckets
// and the result is L2-normalized. This is not a semantic embedding.
func (h *hashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)

	for i, r := range []rune(strings.ToLower(text)) {
		if i >= h.dim {
			break
		}
		vec[i%h.dim] += float32(r) / 1000.0
	}

	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	if magnitude > 0 {
		inv := float32(1.0 / math.Sqrt(magnitude))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return vec, nil
}

type geminiEmbedder struct {
	gemini GeminiService
	dim    int
}

// NewGeminiEmbedder returns an Embedder backed by the Gemini embedding
// model. Requires a collection created with a matching vector size.
func NewGeminiEmbedder(gemini GeminiService) Embedder {
	return &geminiEmbedder{gemini: gemini, dim: 768}
}

// Dimension implements Embedder.
func (g *geminiEmbedder) Dimension() int {
	return g.dim
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return g.gemini.GenerateEmbedding(ctx, text)
}

// ProfileQueryText flattens a skill profile into the retrieval query text.
// Field order is fixed (technical, soft, learning style, interests) so the
// same profile always produces the same query vector.
func ProfileQueryText(profile *models.SkillProfile) string {
	var parts []string
	parts = append(parts, profile.TechnicalSkills...)
	parts = append(parts, profile.SoftSkills...)
	if profile.LearningStyle != "" {
		parts = append(parts, profile.LearningStyle)
	}
	parts = append(parts, profile.CareerInterests...)

	return strings.ToLower(strings.Join(parts, " "))
}
