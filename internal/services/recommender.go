package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/career-compass/internal/models"
	"alfredoptarigan/career-compass/internal/repositories"
)

// maxRecommendations caps the ranker's output.
const maxRecommendations = 5

// RecommendationService runs the two-stage recommendation pipeline:
// vector candidate retrieval, LLM reranking, idempotent persistence.
type RecommendationService interface {
	Recommend(ctx context.Context, studentID uint, profile *models.SkillProfile) ([]models.RankedCareer, error)
}

type recommendationService struct {
	gemini           GeminiService
	embedder         Embedder
	qdrant           QdrantService
	recommendations  repositories.RecommendationRepository
	promptBuilder    *PromptBuilder
	topK             int
	maxRetries       int
	retrievalTimeout time.Duration
}

func NewRecommendationService(
	gemini GeminiService,
	embedder Embedder,
	qdrant QdrantService,
	recommendations repositories.RecommendationRepository,
	topK int,
	maxRetries int,
	retrievalTimeout time.Duration,
) RecommendationService {
	return &recommendationService{
		gemini:           gemini,
		embedder:         embedder,
		qdrant:           qdrant,
		recommendations:  recommendations,
		promptBuilder:    NewPromptBuilder(),
		topK:             topK,
		maxRetries:       maxRetries,
		retrievalTimeout: retrievalTimeout,
	}
}

// Recommend retrieves candidates for the profile, reranks them with the
// model, and atomically replaces the student's stored recommendation set.
// Retrieval failures degrade to a generic candidate list; ranking and
// persistence failures are surfaced.
func (s *recommendationService) Recommend(ctx context.Context, studentID uint, profile *models.SkillProfile) ([]models.RankedCareer, error) {
	if studentID == 0 {
		return nil, fmt.Errorf("%w: student id is required", ErrValidation)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: skill profile is required", ErrValidation)
	}
	profile.Normalize()

	candidates := s.retrieveCandidates(ctx, profile)

	ranked, err := s.rank(ctx, profile, candidates)
	if err != nil {
		return nil, err
	}

	stored, err := s.recommendations.Replace(studentID, ranked)
	if err != nil {
		return nil, fmt.Errorf("%w: replacing recommendations: %v", ErrPersistence, err)
	}

	log.Printf("✅ Stored %d career recommendations for student %d\n", stored, studentID)
	return ranked, nil
}

// retrieveCandidates queries the vector index for the profile. Total
// retrieval failure must not block the student from getting some
// recommendation, so any error here degrades to the fallback list.
func (s *recommendationService) retrieveCandidates(ctx context.Context, profile *models.SkillProfile) []CareerCandidate {
	queryCtx, cancel := context.WithTimeout(ctx, s.retrievalTimeout)
	defer cancel()

	queryText := ProfileQueryText(profile)

	embedding, err := s.embedder.Embed(queryCtx, queryText)
	if err != nil {
		log.Printf("⚠️  %v: %v. Using fallback careers.\n", ErrRetrieval, err)
		return fallbackCandidates()
	}

	candidates, err := s.qdrant.SearchCareers(queryCtx, embedding, s.topK)
	if err != nil {
		log.Printf("⚠️  %v: %v. Using fallback careers.\n", ErrRetrieval, err)
		return fallbackCandidates()
	}

	if len(candidates) == 0 {
		log.Println("⚠️  Vector index returned no candidates. Using fallback careers.")
		return fallbackCandidates()
	}

	return candidates
}

type rankingResult struct {
	RecommendedCareers []models.RankedCareer `json:"recommended_careers"`
}

// rank asks the model to select and justify the top careers. A wrong or
// fabricated ranking is worse than no ranking, so parse failures and empty
// output are hard failures.
func (s *recommendationService) rank(ctx context.Context, profile *models.SkillProfile, candidates []CareerCandidate) ([]models.RankedCareer, error) {
	prompt := s.promptBuilder.BuildRankingPrompt(profile, candidates)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	var result rankingResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("%w: unparseable ranking payload: %v", ErrGeneration, err)
	}

	ranked := sanitizeRanked(result.RecommendedCareers)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: model returned no usable careers", ErrGeneration)
	}

	return ranked, nil
}

// sanitizeRanked drops blank-title items, clamps confidence scores to [0,1],
// and caps the list at maxRecommendations. Order is preserved.
func sanitizeRanked(items []models.RankedCareer) []models.RankedCareer {
	var ranked []models.RankedCareer
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}

		if item.ConfidenceScore < 0 {
			item.ConfidenceScore = 0
		} else if item.ConfidenceScore > 1 {
			item.ConfidenceScore = 1
		}

		ranked = append(ranked, item)
		if len(ranked) == maxRecommendations {
			break
		}
	}
	return ranked
}

// fallbackCandidates is the built-in generic career list used when the
// vector index is unreachable.
func fallbackCandidates() []CareerCandidate {
	return []CareerCandidate{
		{
			ID:             "software_engineer",
			Score:          0.9,
			Title:          "Software Engineer",
			Description:    "Develop software applications and systems",
			RequiredSkills: []string{"Programming", "Problem Solving", "Teamwork"},
		},
		{
			ID:             "data_scientist",
			Score:          0.8,
			Title:          "Data Scientist",
			Description:    "Analyze data to help organizations make decisions",
			RequiredSkills: []string{"Statistics", "Programming", "Machine Learning"},
		},
		{
			ID:             "business_analyst",
			Score:          0.7,
			Title:          "Business Analyst",
			Description:    "Bridge business needs and technical solutions",
			RequiredSkills: []string{"Analysis", "Communication", "Documentation"},
		},
	}
}
